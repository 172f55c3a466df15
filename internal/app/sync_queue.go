package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"go.uber.org/zap"
)

// TeacherSync извлекает преподавателей из сохранённого расписания
type TeacherSync interface {
	SyncFromSchedule(ctx context.Context, schedule *model.Schedule) (int, error)
}

// TeacherSyncQueue фоновая очередь извлечения преподавателей.
// Сохранение расписания только ставит задачу и не ждёт её результата.
type TeacherSyncQueue struct {
	syncer     TeacherSync
	jobs       chan *model.Schedule
	workers    int
	jobTimeout time.Duration
	logger     *zap.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewTeacherSyncQueue создаёт очередь с буфером size и workers обработчиками
func NewTeacherSyncQueue(syncer TeacherSync, workers, size int, logger *zap.Logger) *TeacherSyncQueue {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 1
	}
	return &TeacherSyncQueue{
		syncer:     syncer,
		jobs:       make(chan *model.Schedule, size),
		workers:    workers,
		jobTimeout: 30 * time.Second,
		logger:     logger,
	}
}

// Start запускает обработчики
func (q *TeacherSyncQueue) Start(ctx context.Context) {
	q.logger.Info("Starting teacher sync workers", zap.Int("workers", q.workers))

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.runWorker(ctx, i)
	}
}

// Enqueue ставит расписание в очередь, false если очередь заполнена или остановлена
func (q *TeacherSyncQueue) Enqueue(schedule *model.Schedule) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.stopped {
		return false
	}

	select {
	case q.jobs <- schedule:
		return true
	default:
		return false
	}
}

// Stop закрывает очередь и ждёт завершения уже поставленных задач
func (q *TeacherSyncQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.jobs)
	q.mu.Unlock()

	q.logger.Info("Stopping teacher sync workers")
	q.wg.Wait()
}

func (q *TeacherSyncQueue) runWorker(ctx context.Context, id int) {
	defer q.wg.Done()

	for {
		select {
		case schedule, ok := <-q.jobs:
			if !ok {
				q.logger.Debug("Teacher sync worker stopped", zap.Int("worker", id))
				return
			}
			q.process(ctx, schedule)
		case <-ctx.Done():
			q.logger.Debug("Teacher sync worker cancelled", zap.Int("worker", id))
			return
		}
	}
}

func (q *TeacherSyncQueue) process(ctx context.Context, schedule *model.Schedule) {
	ctx, cancel := context.WithTimeout(ctx, q.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Teacher sync panicked",
				zap.String("schedule_id", schedule.ID),
				zap.Any("panic", r))
		}
	}()

	created, err := q.syncer.SyncFromSchedule(ctx, schedule)
	if err != nil {
		q.logger.Error("Teacher sync failed",
			zap.String("schedule_id", schedule.ID),
			zap.Error(err))
		return
	}

	if created > 0 {
		q.logger.Info("Teachers created from schedule",
			zap.String("schedule_id", schedule.ID),
			zap.Int("created", created))
	}
}
