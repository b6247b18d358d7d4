package service

import "context"

// LLM is the text-generation provider behind guides and chat.
type LLM interface {
	// GenerateResponse returns free text for prompt.
	GenerateResponse(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks the provider for a JSON-only answer. The text is
	// still untrusted and must go through normalize.Decode.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}
