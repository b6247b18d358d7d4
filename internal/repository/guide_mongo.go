package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahmednasr/autoguide-ai/server/internal/database"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the id.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a guarded update lost a race against
	// another writer of the same guide.
	ErrConflict = errors.New("version conflict")
)

// GuideRepository provides Mongo-backed persistence for AI-generated guides.
//
// Every mutation after insert is guarded by the guide's version: the update
// filter is {_id, version} and the version is incremented, so two concurrent
// writers can never both succeed against the same snapshot.
type GuideRepository struct {
	col       *mongo.Collection
	vectorIdx string
	log       logrus.FieldLogger
}

// NewGuideRepository returns a GuideRepository that operates on the "guides" collection.
func NewGuideRepository(db *mongo.Database, log logrus.FieldLogger) *GuideRepository {
	return &GuideRepository{
		col:       db.Collection(database.GuidesCollection),
		vectorIdx: database.GuideVectorIndex,
		log:       log.WithField("repo", database.GuidesCollection),
	}
}

// Create inserts g and fills in its ID.
func (r *GuideRepository) Create(ctx context.Context, g *models.Guide) error {
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, g); err != nil {
		r.log.WithError(err).Error("insert guide")
		return err
	}
	r.log.WithField("guide_id", g.ID.Hex()).Debug("guide inserted")
	return nil
}

// FindByID returns the guide with the given hex id. A malformed id is
// reported as ErrNotFound.
func (r *GuideRepository) FindByID(ctx context.Context, id string) (models.Guide, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Guide{}, ErrNotFound
	}
	var g models.Guide
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Guide{}, ErrNotFound
	}
	if err != nil {
		r.log.WithError(err).WithField("guide_id", id).Error("find guide")
		return models.Guide{}, err
	}
	return g, nil
}

// Recent lists the newest guides first.
func (r *GuideRepository) Recent(ctx context.Context, limit int) ([]models.GuideSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"vehicle": 1, "question": 1, "createdAt": 1})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.GuideSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendChat pushes msgs onto the guide's chat in one atomic update and
// returns the updated guide.
func (r *GuideRepository) AppendChat(ctx context.Context, id primitive.ObjectID, version int64, msgs ...models.ChatMessage) (models.Guide, error) {
	update := bson.M{
		"$push": bson.M{"chat": bson.M{"$each": msgs}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
		"$inc":  bson.M{"version": 1},
	}
	return r.guardedUpdate(ctx, id, version, update)
}

// ResetAnswer replaces the answer and the whole chat transcript.
func (r *GuideRepository) ResetAnswer(ctx context.Context, id primitive.ObjectID, version int64, answer string, chat []models.ChatMessage) (models.Guide, error) {
	update := bson.M{
		"$set": bson.M{
			"aiAnswer":  answer,
			"chat":      chat,
			"updatedAt": time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}
	return r.guardedUpdate(ctx, id, version, update)
}

func (r *GuideRepository) guardedUpdate(ctx context.Context, id primitive.ObjectID, version int64, update bson.M) (models.Guide, error) {
	log := r.log.WithFields(logrus.Fields{"guide_id": id.Hex(), "version": version})

	var g models.Guide
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "version": version},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.WithError(err).Error("guarded update")
		return models.Guide{}, err
	}

	// Nothing matched: either the guide is gone or someone else bumped the version.
	n, cerr := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if cerr != nil {
		return models.Guide{}, cerr
	}
	if n == 0 {
		return models.Guide{}, ErrNotFound
	}
	log.Warn("guide modified concurrently")
	return models.Guide{}, ErrConflict
}

// SetEmbedding stores the question embedding. It does not touch the version:
// the embedding is not part of what clients see.
func (r *GuideRepository) SetEmbedding(ctx context.Context, id primitive.ObjectID, vec []float32) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"embedding": vec}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Similar performs a K-NN search across guide question embeddings, leaving
// out excludeID.
func (r *GuideRepository) Similar(ctx context.Context, queryVec []float32, excludeID primitive.ObjectID, k int) ([]models.GuideSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: r.vectorIdx},
			{Key: "queryVector", Value: queryVec},
			{Key: "path", Value: "embedding"},
			{Key: "numCandidates", Value: (k + 1) * 10},
			{Key: "limit", Value: k + 1}, // the guide itself is usually the top hit
		}}},
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": excludeID}}}},
		{{Key: "$limit", Value: k}},
		{{Key: "$project", Value: bson.D{
			{Key: "vehicle", Value: 1},
			{Key: "question", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "score", Value: bson.M{"$meta": "vectorSearchScore"}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		r.log.WithError(err).Error("vector search")
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.GuideSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping reports whether the guides database is reachable.
func (r *GuideRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}
