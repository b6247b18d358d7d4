package service

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// VertexLLM implements the LLM interface using Google's Vertex AI
type VertexLLM struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
}

// NewVertexLLM creates a new Vertex AI LLM client. credentialsFile may be
// empty, in which case application default credentials are used.
func NewVertexLLM(ctx context.Context, projectID, location, modelName, credentialsFile string) (*VertexLLM, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.8)
	model.SetTopK(40)

	jsonModel := client.GenerativeModel(modelName)
	jsonModel.SetTemperature(0.2)
	jsonModel.ResponseMIMEType = "application/json"

	return &VertexLLM{
		client:    client,
		model:     model,
		jsonModel: jsonModel,
	}, nil
}

// GenerateResponse generates a response using the Vertex AI model
func (l *VertexLLM) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, l.model, prompt)
}

// GenerateJSON is GenerateResponse with the JSON response MIME type.
func (l *VertexLLM) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, l.jsonModel, prompt)
}

func generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	// An empty candidate list is an empty answer, not a provider failure.
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// Close closes the Vertex AI client
func (l *VertexLLM) Close() error {
	return l.client.Close()
}
