package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ahmednasr/autoguide-ai/server/internal/models"
	"github.com/ahmednasr/autoguide-ai/server/internal/repository"
)

// fakeGuideRepo is an in-memory GuideRepository with the same version
// semantics as the Mongo one.
type fakeGuideRepo struct {
	mu         sync.Mutex
	guides     map[primitive.ObjectID]models.Guide
	createErr  error
	similar    []models.GuideSummary
	similarK   int
	appendHook func() // runs inside AppendChat before the version check
}

func newFakeGuideRepo() *fakeGuideRepo {
	return &fakeGuideRepo{guides: map[primitive.ObjectID]models.Guide{}}
}

func (r *fakeGuideRepo) Create(_ context.Context, g *models.Guide) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	r.guides[g.ID] = clone(*g)
	return nil
}

func (r *fakeGuideRepo) FindByID(_ context.Context, id string) (models.Guide, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Guide{}, repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guides[oid]
	if !ok {
		return models.Guide{}, repository.ErrNotFound
	}
	return clone(g), nil
}

func (r *fakeGuideRepo) Recent(_ context.Context, limit int) ([]models.GuideSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.GuideSummary, 0, len(r.guides))
	for _, g := range r.guides {
		out = append(out, g.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeGuideRepo) AppendChat(_ context.Context, id primitive.ObjectID, version int64, msgs ...models.ChatMessage) (models.Guide, error) {
	if r.appendHook != nil {
		r.appendHook()
	}
	return r.update(id, version, func(g *models.Guide) { g.Chat = append(g.Chat, msgs...) })
}

func (r *fakeGuideRepo) ResetAnswer(_ context.Context, id primitive.ObjectID, version int64, answer string, chat []models.ChatMessage) (models.Guide, error) {
	return r.update(id, version, func(g *models.Guide) {
		g.AIAnswer = answer
		g.Chat = chat
	})
}

func (r *fakeGuideRepo) update(id primitive.ObjectID, version int64, fn func(*models.Guide)) (models.Guide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guides[id]
	if !ok {
		return models.Guide{}, repository.ErrNotFound
	}
	if g.Version != version {
		return models.Guide{}, repository.ErrConflict
	}
	fn(&g)
	g.Version++
	g.UpdatedAt = time.Now().UTC()
	r.guides[id] = g
	return clone(g), nil
}

func (r *fakeGuideRepo) SetEmbedding(_ context.Context, id primitive.ObjectID, vec []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guides[id]
	if !ok {
		return repository.ErrNotFound
	}
	g.Embedding = vec
	r.guides[id] = g
	return nil
}

func (r *fakeGuideRepo) Similar(_ context.Context, _ []float32, _ primitive.ObjectID, k int) ([]models.GuideSummary, error) {
	r.similarK = k
	return r.similar, nil
}

// bump simulates another writer.
func (r *fakeGuideRepo) bump(id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g := r.guides[id]
	g.Version++
	r.guides[id] = g
}

func (r *fakeGuideRepo) get(id primitive.ObjectID) models.Guide {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.guides[id])
}

func clone(g models.Guide) models.Guide {
	g.Chat = append([]models.ChatMessage(nil), g.Chat...)
	return g
}

type fakeLLM struct {
	mu      sync.Mutex
	text    string
	json    string
	err     error
	prompts []string
}

func (f *fakeLLM) GenerateResponse(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.json, f.err
}

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f fakeEmbedder) Embed(context.Context, string) ([]float32, error) { return f.vec, f.err }

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *mapCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *mapCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type fakeCatalog struct {
	entries []models.ServiceCatalogEntry
	err     error
	asked   []string
}

func (f *fakeCatalog) FindByServices(_ context.Context, services []string) ([]models.ServiceCatalogEntry, error) {
	f.asked = services
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ServiceCatalogEntry
	for _, s := range services {
		for _, e := range f.entries {
			if e.Service == s {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakeQueryLogs struct {
	logs []models.QueryLog
	err  error
}

func (f *fakeQueryLogs) Insert(_ context.Context, q models.QueryLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, q)
	return nil
}
