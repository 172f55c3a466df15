package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("AI client is not configured")

// GroqClient chat completion через OpenAI-совместимый API Groq
type GroqClient struct {
	client *openai.Client
	logger *zap.Logger
}

func NewGroqClient(apiKey, baseURL string, logger *zap.Logger) *GroqClient {
	if apiKey == "" {
		return &GroqClient{logger: logger}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &GroqClient{
		client: openai.NewClientWithConfig(cfg),
		logger: logger,
	}
}

// Complete отправляет системный промпт и вопрос пользователя, возвращает текст первого ответа
func (g *GroqClient) Complete(ctx context.Context, model, systemPrompt, userMessage string, temperature float32) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("create chat completion: empty choices")
	}

	g.logger.Debug("Chat completion received",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Message.Content, nil
}
