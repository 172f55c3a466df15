package ai

import (
	"context"
	"testing"

	"github.com/Freeeeeet/schedule_api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestToRemoteFileStates(t *testing.T) {
	tests := []struct {
		in   genai.FileState
		want service.FileState
	}{
		{genai.FileStateActive, service.FileStateActive},
		{genai.FileStateFailed, service.FileStateFailed},
		{genai.FileStateProcessing, service.FileStateProcessing},
		{genai.FileStateUnspecified, service.FileStateFailed},
		{"", service.FileStateFailed},
	}

	for _, tt := range tests {
		t.Run("state_"+string(tt.in), func(t *testing.T) {
			got := toRemoteFile(&genai.File{
				Name:     "files/abc",
				URI:      "https://generativelanguage.googleapis.com/v1beta/files/abc",
				MIMEType: "application/pdf",
				State:    tt.in,
			})
			assert.Equal(t, tt.want, got.State)
			assert.Equal(t, "files/abc", got.Name)
			assert.Equal(t, "application/pdf", got.MIMEType)
		})
	}
}

func TestGeminiNotConfigured(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "", "gemini-2.5-pro", zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.Upload(ctx, "x.pdf", service.PDFMimeType)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.Get(ctx, "files/abc")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.Generate(ctx, &service.RemoteFile{}, "i", "p")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.ErrorIs(t, client.Delete(ctx, "files/abc"), ErrNotConfigured)
}
