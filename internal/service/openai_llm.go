package service

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAILLM implements the LLM interface with OpenAI chat completions.
type OpenAILLM struct {
	client *openai.Client
	model  string
}

// NewOpenAILLM builds a client for apiKey. baseURL is optional and points the
// client at an OpenAI-compatible endpoint.
func NewOpenAILLM(apiKey, baseURL, model string) *OpenAILLM {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &OpenAILLM{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (o *OpenAILLM) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.7,
		N:           1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

func (o *OpenAILLM) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.2,
		N:           1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Return only valid JSON."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

func (o *OpenAILLM) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
