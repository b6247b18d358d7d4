package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahmednasr/autoguide-ai/server/internal/database"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

// CatalogRepository reads and seeds the service_parts reference catalog.
type CatalogRepository struct {
	col *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{col: db.Collection(database.ServicePartsCollection)}
}

// FindByServices returns the entries for the given service keys, in key order.
// Unknown keys are skipped.
func (r *CatalogRepository) FindByServices(ctx context.Context, services []string) ([]models.ServiceCatalogEntry, error) {
	if len(services) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"service": bson.M{"$in": services}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var found []models.ServiceCatalogEntry
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}
	byKey := make(map[string]models.ServiceCatalogEntry, len(found))
	for _, e := range found {
		byKey[e.Service] = e
	}
	out := make([]models.ServiceCatalogEntry, 0, len(found))
	for _, s := range services {
		if e, ok := byKey[s]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// Upsert writes e keyed by its service. createdAt is only set on insert.
func (r *CatalogRepository) Upsert(ctx context.Context, e models.ServiceCatalogEntry) error {
	now := time.Now().UTC()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"service": e.Service},
		bson.M{
			"$set": bson.M{
				"service":   e.Service,
				"parts":     e.Parts,
				"tools":     e.Tools,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
