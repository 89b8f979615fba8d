package assist

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Generator produces free text from a prompt. The gateway is the only
// caller; it owns timeouts and failure mapping.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator calls the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator constructs a generator for the given credentials.
// The model name falls back to a small default when empty.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
