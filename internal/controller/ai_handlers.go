package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/Freeeeeet/schedule_api/internal/service"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// pdfFormField имя multipart поля с файлом
const pdfFormField = "pdf"

type AIHandlers struct {
	ai        *service.AIService
	extractor *service.ExtractionService
	uploadDir string
	logger    *zap.Logger
}

func NewAIHandlers(ai *service.AIService, extractor *service.ExtractionService, uploadDir string, logger *zap.Logger) (*AIHandlers, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &AIHandlers{
		ai:        ai,
		extractor: extractor,
		uploadDir: uploadDir,
		logger:    logger,
	}, nil
}

type queryRequest struct {
	Query string `json:"query"`
	Topic string `json:"topic"`
}

// Query POST /ai/query
func (h *AIHandlers) Query(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.ai.Query(c.UserContext(), req.Query, req.Topic)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(result)
}

// ExtractPDF POST /extract-pdf, отвечает потоком server-sent events.
// Неверный тип или размер файла отклоняется обычным JSON до начала потока.
func (h *AIHandlers) ExtractPDF(c *fiber.Ctx) error {
	fh, err := c.FormFile(pdfFormField)
	if err != nil {
		h.logger.Debug("No PDF in request", zap.Error(err))
		return h.stream(c, "")
	}

	if fh.Size > service.MaxPDFSize {
		return writeServiceError(c, h.logger, fmt.Errorf("%w: limit is %d bytes", service.ErrFileTooLarge, service.MaxPDFSize))
	}

	if err := checkPDF(fh); err != nil {
		return writeServiceError(c, h.logger, err)
	}

	path := filepath.Join(h.uploadDir, uuid.NewString()+".pdf")
	if err := c.SaveFile(fh, path); err != nil {
		return writeServiceError(c, h.logger, fmt.Errorf("save upload: %w", err))
	}

	return h.stream(c, path)
}

func (h *AIHandlers) stream(c *fiber.Ctx, path string) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	extractor := h.extractor
	logger := h.logger

	// fiber.Ctx нельзя использовать внутри writer, он уже возвращён в пул
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		err := extractor.Run(context.Background(), path, func(ev service.ProgressEvent) error {
			return writeEvent(w, ev)
		})
		if err != nil {
			logger.Warn("PDF extraction finished with error", zap.Error(err))
		}
	}))

	return nil
}

// writeEvent пишет событие в формате SSE и сразу отправляет его
func writeEvent(w *bufio.Writer, ev service.ProgressEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

// checkPDF проверяет заявленный тип и сигнатуру файла
func checkPDF(fh *multipart.FileHeader) error {
	if fh.Header.Get(fiber.HeaderContentType) != service.PDFMimeType {
		return service.ErrUnsupportedMedia
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("read upload: %w", err)
	}

	if !mimetype.Detect(head[:n]).Is(service.PDFMimeType) {
		return service.ErrUnsupportedMedia
	}
	return nil
}
