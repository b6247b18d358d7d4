package service

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"math"
	"strings"
)

// DummyLLM answers without calling any provider. It is selected with
// LLM_PROVIDER=dummy for local development.
type DummyLLM struct{}

func NewDummyLLM() DummyLLM {
	return DummyLLM{}
}

func (DummyLLM) GenerateResponse(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "User follow-up question:") {
		return "- This is a placeholder reply. Configure LLM_PROVIDER for real answers.", nil
	}
	return "## Summary\nThis is a placeholder guide. Configure LLM_PROVIDER for real answers.", nil
}

func (DummyLLM) GenerateJSON(context.Context, string) (string, error) {
	b, err := json.Marshal(map[string]any{
		"title":      "Placeholder guide",
		"difficulty": "Easy",
		"warnings":   []string{"Placeholder output. Configure LLM_PROVIDER for real answers."},
		"tools":      []any{},
		"parts":      []any{},
		"steps": []any{
			map[string]any{"step": 1, "text": "Consult the owner's manual.", "tips": []string{}},
		},
		"notes":       []string{},
		"sourcesUsed": []string{},
	})
	return string(b), err
}

// DummyEmbeddingDims matches the Vertex text-embedding size so the same
// vector index serves both.
const DummyEmbeddingDims = 768

type dummyEmbedder struct{}

// Embed hashes each lowercased word into a bucket and L2-normalizes the
// result. Texts sharing words land close together; blank text is the zero
// vector.
func (dummyEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, DummyEmbeddingDims)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%DummyEmbeddingDims]++
	}
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec, nil
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

// NewDummyEmbedder returns the embedder used with LLM_PROVIDER=dummy.
func NewDummyEmbedder() EmbeddingClient {
	return dummyEmbedder{}
}
