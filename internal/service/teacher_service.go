package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/Freeeeeet/schedule_api/internal/repository/base"
	"go.uber.org/zap"
)

// instructorSeparator разделяет нескольких преподавателей одной пары
const instructorSeparator = "+"

// TeacherStore хранилище преподавателей
type TeacherStore interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	ExistingNames(ctx context.Context, university, program string, names []string) (map[string]bool, error)
	List(ctx context.Context, university, program string) ([]*model.Teacher, error)
}

type TeacherService struct {
	teachers TeacherStore
	logger   *zap.Logger
}

func NewTeacherService(teachers TeacherStore, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		teachers: teachers,
		logger:   logger,
	}
}

// ExtractTeacherNames собирает уникальные имена преподавателей в порядке появления.
// Сравнение регистрозависимое, без нормализации кроме обрезки пробелов.
func ExtractTeacherNames(schedule *model.Schedule) []string {
	if schedule == nil {
		return nil
	}

	seen := make(map[string]bool)
	var names []string

	for _, day := range model.Weekdays {
		for _, period := range schedule.Schedule[day] {
			if strings.TrimSpace(period.Instructor) == "" {
				continue
			}
			for _, token := range strings.Split(period.Instructor, instructorSeparator) {
				name := strings.TrimSpace(token)
				if name == "" || seen[name] {
					continue
				}
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	return names
}

// SyncFromSchedule создаёт записи для новых преподавателей расписания.
// Ошибка отдельной записи логируется и не прерывает остальные.
func (s *TeacherService) SyncFromSchedule(ctx context.Context, schedule *model.Schedule) (int, error) {
	names := ExtractTeacherNames(schedule)
	if len(names) == 0 {
		return 0, nil
	}

	existing, err := s.teachers.ExistingNames(ctx, schedule.University, schedule.Program, names)
	if err != nil {
		return 0, fmt.Errorf("check existing teachers: %w", err)
	}

	created := 0
	for _, name := range names {
		if existing[name] {
			continue
		}

		teacher := &model.Teacher{
			Name:       name,
			University: schedule.University,
			Program:    schedule.Program,
		}

		if err := s.teachers.Create(ctx, teacher); err != nil {
			if base.IsUniqueViolation(err) {
				// параллельное сохранение успело создать того же преподавателя
				s.logger.Debug("Teacher already created concurrently",
					zap.String("name", name),
					zap.String("schedule_id", schedule.ID))
				continue
			}
			s.logger.Error("Failed to create teacher",
				zap.String("name", name),
				zap.String("schedule_id", schedule.ID),
				zap.Error(err))
			continue
		}
		created++
	}

	s.logger.Info("Teachers synced from schedule",
		zap.String("schedule_id", schedule.ID),
		zap.Int("names", len(names)),
		zap.Int("created", created))

	return created, nil
}

// List возвращает преподавателей университета и программы
func (s *TeacherService) List(ctx context.Context, university, program string) ([]*model.Teacher, error) {
	teachers, err := s.teachers.List(ctx, strings.TrimSpace(university), strings.TrimSpace(program))
	if err != nil {
		s.logger.Error("Failed to list teachers",
			zap.String("university", university),
			zap.String("program", program),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return teachers, nil
}
