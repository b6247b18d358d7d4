package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	GuidesCollection       = "guides"
	QueryLogsCollection    = "query_logs"
	ServicePartsCollection = "service_parts"
)

// GuideVectorIndex is the Atlas Vector Search index over guides.embedding.
// Atlas search indexes are managed outside the driver; EnsureIndexes only
// creates the regular B-tree indexes.
const GuideVectorIndex = "guide_question_index"

// EnsureIndexes creates the indexes the repositories rely on. It is
// idempotent and safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// sidebar: newest first
	if _, err := db.Collection(GuidesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("by_created"),
	}); err != nil {
		return fmt.Errorf("guides indexes: %w", err)
	}

	if _, err := db.Collection(QueryLogsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("by_created"),
	}); err != nil {
		return fmt.Errorf("query_logs indexes: %w", err)
	}

	if _, err := db.Collection(ServicePartsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "service", Value: 1}},
		Options: options.Index().
			SetName("uniq_service").
			SetUnique(true),
	}); err != nil {
		return fmt.Errorf("service_parts indexes: %w", err)
	}
	return nil
}
