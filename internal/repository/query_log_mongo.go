package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahmednasr/autoguide-ai/server/internal/database"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

// QueryLogRepository appends raw provider output for structured guides.
type QueryLogRepository struct {
	col *mongo.Collection
}

func NewQueryLogRepository(db *mongo.Database) *QueryLogRepository {
	return &QueryLogRepository{col: db.Collection(database.QueryLogsCollection)}
}

// Insert stores q, defaulting its id and timestamp.
func (r *QueryLogRepository) Insert(ctx context.Context, q models.QueryLog) error {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	if q.SourcesUsed == nil {
		q.SourcesUsed = []string{}
	}
	_, err := r.col.InsertOne(ctx, q)
	return err
}
