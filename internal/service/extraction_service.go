package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	PDFMimeType = "application/pdf"
	// MaxPDFSize предел размера загружаемого файла
	MaxPDFSize = 10 * 1024 * 1024

	extractionPrompt = "Dont cover it with ```json ```"
)

// DefaultExtractionInstruction используется когда файл промпта не найден
const DefaultExtractionInstruction = `You extract university class timetables from PDF documents.
Return a single JSON object with the keys "ID", "semester", "program", "section", "university" and "schedule".
"schedule" maps each weekday from Monday to Saturday to an ordered array of periods.
Every period has the keys "Period" (number), "Start_Time" and "End_Time" ("HH:MM"), "Course_Name",
"Instructor" (several instructors joined with " + "), "Building", "Room",
"Group" ("Group 1", "Group 2" or "All"), "Class_Duration" (number), "Class_Count" (number)
and "Class_type" ("Theory", "Lab", "Extra", "Seminar" or "Free").
Return JSON only.`

// FileState состояние файла на стороне AI сервиса
type FileState string

const (
	FileStateProcessing FileState = "PROCESSING"
	FileStateActive     FileState = "ACTIVE"
	FileStateFailed     FileState = "FAILED"
)

// RemoteFile файл, загруженный в AI сервис
type RemoteFile struct {
	Name     string
	URI      string
	MIMEType string
	State    FileState
}

// DocumentAI сервис загрузки и анализа документов
type DocumentAI interface {
	Upload(ctx context.Context, path, mimeType string) (*RemoteFile, error)
	Get(ctx context.Context, name string) (*RemoteFile, error)
	Generate(ctx context.Context, file *RemoteFile, systemInstruction, prompt string) (string, error)
	Delete(ctx context.Context, name string) error
}

// ExtractionStatus этап обработки документа
type ExtractionStatus string

const (
	StatusConnected  ExtractionStatus = "connected"
	StatusUploading  ExtractionStatus = "uploading"
	StatusUploaded   ExtractionStatus = "uploaded"
	StatusProcessing ExtractionStatus = "processing"
	StatusProcessed  ExtractionStatus = "processed"
	StatusAnalyzing  ExtractionStatus = "analyzing"
	StatusExtracting ExtractionStatus = "extracting"
	StatusFinalizing ExtractionStatus = "finalizing"
	StatusComplete   ExtractionStatus = "complete"
	StatusError      ExtractionStatus = "error"
)

// ProgressEvent одно событие канала прогресса
type ProgressEvent struct {
	Status    ExtractionStatus `json:"status"`
	Message   string           `json:"message"`
	Progress  int              `json:"progress,omitempty"`
	Detail    string           `json:"detail,omitempty"`
	Data      any              `json:"data,omitempty"`
	Timestamp string           `json:"timestamp"`
}

// Emitter доставляет событие клиенту, ошибка означает что клиент отключился
type Emitter func(ProgressEvent) error

type ExtractionConfig struct {
	PollInterval time.Duration
	PollTimeout  time.Duration
	Instruction  string
}

type ExtractionService struct {
	docs   DocumentAI
	cfg    ExtractionConfig
	logger *zap.Logger
	now    func() time.Time
}

func NewExtractionService(docs DocumentAI, cfg ExtractionConfig, logger *zap.Logger) *ExtractionService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 5 * time.Minute
	}
	if strings.TrimSpace(cfg.Instruction) == "" {
		cfg.Instruction = DefaultExtractionInstruction
	}
	return &ExtractionService{
		docs:   docs,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// LoadInstruction читает системную инструкцию из файла
func LoadInstruction(path string, logger *zap.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil || strings.TrimSpace(string(data)) == "" {
		logger.Warn("Extraction prompt file not found, using built-in instruction",
			zap.String("path", path))
		return DefaultExtractionInstruction
	}
	return string(data)
}

// run состояние одного запроса
type run struct {
	svc    *ExtractionService
	emit   Emitter
	cancel context.CancelFunc
	gone   bool
}

func (r *run) send(status ExtractionStatus, progress int, message string) {
	r.sendEvent(ProgressEvent{Status: status, Progress: progress, Message: message})
}

func (r *run) sendEvent(ev ProgressEvent) {
	if r.gone {
		return
	}
	ev.Timestamp = r.svc.now().UTC().Format(time.RFC3339Nano)
	if err := r.emit(ev); err != nil {
		r.gone = true
		r.cancel()
		r.svc.logger.Warn("Progress client disconnected",
			zap.String("status", string(ev.Status)),
			zap.Error(err))
	}
}

func (r *run) fail(err error) error {
	r.svc.logger.Error("PDF extraction failed", zap.Error(err))
	r.sendEvent(ProgressEvent{
		Status:  StatusError,
		Message: "Failed to extract PDF content",
		Detail:  err.Error(),
	})
	return err
}

// Run загружает PDF, ждёт обработки, извлекает данные и сообщает о каждом этапе.
// Локальный файл удаляется при любом исходе.
func (s *ExtractionService) Run(ctx context.Context, localPath string, emit Emitter) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &run{svc: s, emit: emit, cancel: cancel}

	if localPath != "" {
		defer s.removeLocal(localPath)
	}

	r.send(StatusConnected, 0, "Connected to extraction stream")

	if localPath == "" {
		r.sendEvent(ProgressEvent{Status: StatusError, Message: "No PDF file uploaded"})
		return fmt.Errorf("%w: no PDF file uploaded", ErrValidation)
	}

	r.send(StatusUploading, 10, "Uploading PDF to processing server...")

	file, err := s.docs.Upload(ctx, localPath, PDFMimeType)
	if err != nil {
		return r.fail(fmt.Errorf("%w: upload: %v", ErrUpstream, err))
	}
	defer s.removeRemote(file.Name)

	s.logger.Info("PDF uploaded", zap.String("file", file.Name))
	r.send(StatusUploaded, 25, "PDF uploaded successfully")

	file, err = s.waitForActive(ctx, r, file)
	if err != nil {
		return r.fail(err)
	}

	r.send(StatusProcessed, 65, "PDF processed successfully")
	r.send(StatusAnalyzing, 70, "Analyzing PDF content...")
	r.send(StatusExtracting, 80, "Extracting information from PDF...")

	text, err := s.docs.Generate(ctx, file, s.cfg.Instruction, extractionPrompt)
	if err != nil {
		return r.fail(fmt.Errorf("%w: generate: %v", ErrUpstream, err))
	}

	r.send(StatusFinalizing, 95, "Formatting extracted data...")

	r.sendEvent(ProgressEvent{
		Status:   StatusComplete,
		Progress: 100,
		Message:  "PDF extraction completed successfully",
		Data:     ParseExtracted(text),
	})

	if r.gone {
		return context.Canceled
	}
	return nil
}

// waitForActive опрашивает статус файла, пока он в обработке, не дольше PollTimeout
func (s *ExtractionService) waitForActive(ctx context.Context, r *run, file *RemoteFile) (*RemoteFile, error) {
	r.send(StatusProcessing, 30, "Processing PDF file...")

	file, err := s.docs.Get(ctx, file.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: get file status: %v", ErrUpstream, err)
	}

	deadline := time.NewTimer(s.cfg.PollTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	progress := 30
	dots := 0
	for file.State == FileStateProcessing {
		dots = (dots + 1) % 4
		if progress < 60 {
			progress += 3
		}
		r.send(StatusProcessing, progress, "Processing PDF"+strings.Repeat(".", dots))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("%w: file %s still processing after %s", ErrUpstream, file.Name, s.cfg.PollTimeout)
		case <-ticker.C:
		}

		file, err = s.docs.Get(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: get file status: %v", ErrUpstream, err)
		}
	}

	if file.State != FileStateActive {
		return nil, fmt.Errorf("%w: file %s failed to process", ErrUpstream, file.Name)
	}

	return file, nil
}

func (s *ExtractionService) removeLocal(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Failed to remove uploaded file",
			zap.String("path", path),
			zap.Error(err))
	}
}

func (s *ExtractionService) removeRemote(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.docs.Delete(ctx, name); err != nil {
		s.logger.Warn("Failed to delete remote file",
			zap.String("file", name),
			zap.Error(err))
	}
}

// ParseExtracted убирает markdown ограждения и пытается разобрать JSON,
// при неудаче возвращает очищенный текст
func ParseExtracted(text string) any {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var data any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return cleaned
	}
	return data
}
