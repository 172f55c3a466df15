package servicetest

import (
	"context"
	"sync"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/Freeeeeet/schedule_api/internal/service"
)

// SyncRecorder запоминает поставленные в очередь расписания
type SyncRecorder struct {
	mu     sync.Mutex
	Jobs   []*model.Schedule
	Reject bool
}

func (r *SyncRecorder) Enqueue(schedule *model.Schedule) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Reject {
		return false
	}
	r.Jobs = append(r.Jobs, schedule)
	return true
}

// CompleterCall аргументы одного вызова Complete
type CompleterCall struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	Temperature  float32
}

type Completer struct {
	mu     sync.Mutex
	Answer string
	Err    error
	Calls  []CompleterCall
}

func (c *Completer) Complete(_ context.Context, model, systemPrompt, userMessage string, temperature float32) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, CompleterCall{
		Model:        model,
		SystemPrompt: systemPrompt,
		UserMessage:  userMessage,
		Temperature:  temperature,
	})
	if c.Err != nil {
		return "", c.Err
	}
	return c.Answer, nil
}

// DocumentAI отдаёт PROCESSING заданное число раз, затем FinalState
type DocumentAI struct {
	mu               sync.Mutex
	ProcessingPolls  int
	FinalState       service.FileState
	Text             string
	UploadErr        error
	GenerateErr      error
	UploadedPaths    []string
	Deleted          []string
	GenerateRequests int
	polls            int
}

func (d *DocumentAI) Upload(_ context.Context, path, mimeType string) (*service.RemoteFile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.UploadErr != nil {
		return nil, d.UploadErr
	}
	d.UploadedPaths = append(d.UploadedPaths, path)
	return &service.RemoteFile{
		Name:     "files/test-pdf",
		URI:      "https://example.invalid/files/test-pdf",
		MIMEType: mimeType,
		State:    service.FileStateProcessing,
	}, nil
}

func (d *DocumentAI) Get(_ context.Context, name string) (*service.RemoteFile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := d.FinalState
	if state == "" {
		state = service.FileStateActive
	}
	if d.polls < d.ProcessingPolls {
		state = service.FileStateProcessing
	}
	d.polls++

	return &service.RemoteFile{
		Name:     name,
		URI:      "https://example.invalid/" + name,
		MIMEType: service.PDFMimeType,
		State:    state,
	}, nil
}

func (d *DocumentAI) Generate(_ context.Context, _ *service.RemoteFile, _, _ string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.GenerateRequests++
	if d.GenerateErr != nil {
		return "", d.GenerateErr
	}
	return d.Text, nil
}

func (d *DocumentAI) Delete(_ context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Deleted = append(d.Deleted, name)
	return nil
}
