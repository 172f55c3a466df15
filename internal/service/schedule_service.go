package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ScheduleStore хранилище расписаний
type ScheduleStore interface {
	Upsert(ctx context.Context, schedule *model.Schedule) (bool, error)
	GetIDs(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TeacherSyncer принимает расписание для фонового извлечения преподавателей.
// Enqueue не блокирует и не возвращает ошибок сохранения.
type TeacherSyncer interface {
	Enqueue(schedule *model.Schedule) bool
}

type ScheduleService struct {
	schedules ScheduleStore
	syncer    TeacherSyncer
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewScheduleService(
	schedules ScheduleStore,
	syncer TeacherSyncer,
	validate *validator.Validate,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		syncer:    syncer,
		validate:  validate,
		logger:    logger,
	}
}

// Upsert сохраняет расписание целиком. created = true для нового ID.
func (s *ScheduleService) Upsert(ctx context.Context, schedule *model.Schedule) (bool, error) {
	if schedule == nil {
		return false, fmt.Errorf("%w: schedule is required", ErrValidation)
	}
	schedule.ID = strings.TrimSpace(schedule.ID)

	if err := s.validate.Struct(schedule); err != nil {
		return false, validationError(err)
	}

	created, err := s.schedules.Upsert(ctx, schedule)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.logger.Info("Schedule saved",
		zap.String("schedule_id", schedule.ID),
		zap.String("university", schedule.University),
		zap.String("program", schedule.Program),
		zap.Bool("created", created))

	// Запись уже зафиксирована, извлечение преподавателей её не откатывает
	if s.syncer != nil && !s.syncer.Enqueue(cloneSchedule(schedule)) {
		s.logger.Warn("Teacher sync skipped, queue is full",
			zap.String("schedule_id", schedule.ID))
	}

	return created, nil
}

// ListIDs возвращает идентификаторы всех расписаний
func (s *ScheduleService) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.schedules.GetIDs(ctx)
	if err != nil {
		s.logger.Error("Failed to list schedule ids", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return ids, nil
}

// FindByID получает расписание по ID
func (s *ScheduleService) FindByID(ctx context.Context, id string) (*model.Schedule, error) {
	id = strings.TrimSpace(id)
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get schedule",
			zap.String("schedule_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}

	return schedule, nil
}

// DeleteByID удаляет расписание
func (s *ScheduleService) DeleteByID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	deleted, err := s.schedules.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete schedule",
			zap.String("schedule_id", id),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if !deleted {
		return fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}

	s.logger.Info("Schedule deleted", zap.String("schedule_id", id))
	return nil
}

func cloneSchedule(schedule *model.Schedule) *model.Schedule {
	clone := *schedule
	clone.Schedule = make(model.WeekSchedule, len(schedule.Schedule))
	for day, periods := range schedule.Schedule {
		clone.Schedule[day] = append([]model.ClassPeriod(nil), periods...)
	}
	return &clone
}
