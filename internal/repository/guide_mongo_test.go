package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ahmednasr/autoguide-ai/server/internal/database"
	"github.com/ahmednasr/autoguide-ai/server/internal/logger"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

func guideDoc(t *testing.T, g models.Guide) bson.D {
	t.Helper()
	raw, err := bson.Marshal(g)
	if err != nil {
		t.Fatalf("marshal guide: %v", err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal guide: %v", err)
	}
	return doc
}

// countResponse is the aggregate reply CountDocuments expects.
func countResponse(mt *mtest.T, n int32) bson.D {
	ns := mt.DB.Name() + "." + database.GuidesCollection
	if n == 0 {
		return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
	}
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func TestGuideRepository_GuardedUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	id := primitive.NewObjectID()
	msg := models.ChatMessage{Role: models.RoleUser, Text: "which oil?", CreatedAt: time.Now().UTC()}

	mt.Run("updated guide is returned", func(mt *mtest.T) {
		repo := NewGuideRepository(mt.DB, logger.Discard())
		want := models.Guide{
			ID:       id,
			Vehicle:  models.Vehicle{Make: "Honda", Model: "Civic", Year: "2015"},
			Question: "How do I change the oil?",
			Chat:     []models.ChatMessage{msg},
			Version:  4,
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: guideDoc(mt.T, want)}))

		got, err := repo.AppendChat(ctx, id, 3, msg)
		if err != nil {
			mt.Fatalf("append: %v", err)
		}
		if got.ID != id || got.Version != 4 || len(got.Chat) != 1 || got.Vehicle.Year != "2015" {
			mt.Fatalf("unexpected guide %+v", got)
		}
	})

	mt.Run("missing guide is not found", func(mt *mtest.T) {
		repo := NewGuideRepository(mt.DB, logger.Discard())
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			countResponse(mt, 0),
		)

		_, err := repo.AppendChat(ctx, id, 3, msg)
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("stale version conflicts", func(mt *mtest.T) {
		repo := NewGuideRepository(mt.DB, logger.Discard())
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			countResponse(mt, 1),
		)

		_, err := repo.ResetAnswer(ctx, id, 3, "new answer", nil)
		if !errors.Is(err, ErrConflict) {
			mt.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	mt.Run("server errors pass through", func(mt *mtest.T) {
		repo := NewGuideRepository(mt.DB, logger.Discard())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad update",
		}))

		_, err := repo.AppendChat(ctx, id, 3, msg)
		if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			mt.Fatalf("expected the server error, got %v", err)
		}
	})
}

func TestGuideRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		repo := NewGuideRepository(mt.DB, logger.Discard())
		if _, err := repo.FindByID(ctx, "not-an-id"); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("no document is not found", func(mt *mtest.T) {
		repo := NewGuideRepository(mt.DB, logger.Discard())
		ns := mt.DB.Name() + "." + database.GuidesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := repo.FindByID(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("upper-case hex finds the guide", func(mt *mtest.T) {
		repo := NewGuideRepository(mt.DB, logger.Discard())
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + database.GuidesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			guideDoc(mt.T, models.Guide{ID: id, Question: "oil?"})))

		g, err := repo.FindByID(ctx, strings.ToUpper(id.Hex()))
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if g.ID != id || g.Question != "oil?" {
			mt.Fatalf("unexpected guide %+v", g)
		}
	})
}

func TestGuideRepository_SetEmbeddingUnknownGuide(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewGuideRepository(mt.DB, logger.Discard())
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.SetEmbedding(context.Background(), primitive.NewObjectID(), []float32{0.1, 0.2})
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
