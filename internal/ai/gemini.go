package ai

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Freeeeeet/schedule_api/internal/service"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient загрузка файлов и генерация через Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return &GeminiClient{model: model, logger: logger}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Upload загружает локальный файл
func (g *GeminiClient) Upload(ctx context.Context, path, mimeType string) (*service.RemoteFile, error) {
	if g.client == nil {
		return nil, ErrNotConfigured
	}

	file, err := g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: filepath.Base(path),
	})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	g.logger.Info("File uploaded to Gemini",
		zap.String("display_name", file.DisplayName),
		zap.String("name", file.Name))

	return toRemoteFile(file), nil
}

// Get возвращает текущее состояние файла
func (g *GeminiClient) Get(ctx context.Context, name string) (*service.RemoteFile, error) {
	if g.client == nil {
		return nil, ErrNotConfigured
	}

	file, err := g.client.Files.Get(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", name, err)
	}

	return toRemoteFile(file), nil
}

// Generate запрашивает модель с файлом в качестве контекста
func (g *GeminiClient) Generate(ctx context.Context, file *service.RemoteFile, systemInstruction, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, file.MIMEType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](1),
		TopP:              genai.Ptr[float32](0.95),
		TopK:              genai.Ptr[float32](64),
		MaxOutputTokens:   65536,
		ResponseMIMEType:  "text/plain",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}

// Delete удаляет файл из хранилища Gemini
func (g *GeminiClient) Delete(ctx context.Context, name string) error {
	if g.client == nil {
		return ErrNotConfigured
	}

	if _, err := g.client.Files.Delete(ctx, name, nil); err != nil {
		return fmt.Errorf("delete file %s: %w", name, err)
	}
	return nil
}

func toRemoteFile(file *genai.File) *service.RemoteFile {
	// всё кроме PROCESSING и ACTIVE считается ошибкой обработки
	state := service.FileStateFailed
	switch file.State {
	case genai.FileStateProcessing:
		state = service.FileStateProcessing
	case genai.FileStateActive:
		state = service.FileStateActive
	}

	return &service.RemoteFile{
		Name:     file.Name,
		URI:      file.URI,
		MIMEType: file.MIMEType,
		State:    state,
	}
}
