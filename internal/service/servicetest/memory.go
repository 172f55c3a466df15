// Package servicetest in-memory реализации хранилищ и AI клиентов для тестов
package servicetest

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStoreDown имитирует недоступную БД
var ErrStoreDown = errors.New("store is down")

type HolidayStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Holiday
	Fail  bool
}

func NewHolidayStore() *HolidayStore {
	return &HolidayStore{items: make(map[uuid.UUID]*model.Holiday)}
}

func (s *HolidayStore) Upsert(_ context.Context, holiday *model.Holiday) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return false, ErrStoreDown
	}

	now := time.Now()
	for _, h := range s.items {
		if h.Name == holiday.Name && h.Date == holiday.Date {
			h.UpdatedAt = now
			*holiday = *h
			return false, nil
		}
	}

	holiday.ID = uuid.New()
	holiday.CreatedAt = now
	holiday.UpdatedAt = now
	stored := *holiday
	s.items[holiday.ID] = &stored
	return true, nil
}

func (s *HolidayStore) GetAll(context.Context) ([]*model.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrStoreDown
	}

	out := make([]*model.Holiday, 0, len(s.items))
	for _, h := range s.items {
		copied := *h
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *HolidayStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return false, ErrStoreDown
	}
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

// ScheduleStore хранит расписания как JSON, как это делает JSONB колонка
type ScheduleStore struct {
	mu    sync.Mutex
	items map[string][]byte
	Fail  bool
}

func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{items: make(map[string][]byte)}
}

func (s *ScheduleStore) Upsert(_ context.Context, schedule *model.Schedule) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return false, ErrStoreDown
	}

	now := time.Now().UTC()
	_, exists := s.items[schedule.ID]
	if exists {
		var prev model.Schedule
		_ = json.Unmarshal(s.items[schedule.ID], &prev)
		schedule.CreatedAt = prev.CreatedAt
	} else {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	data, err := json.Marshal(schedule)
	if err != nil {
		return false, err
	}
	s.items[schedule.ID] = data
	return !exists, nil
}

func (s *ScheduleStore) GetIDs(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrStoreDown
	}

	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *ScheduleStore) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrStoreDown
	}

	data, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	var schedule model.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *ScheduleStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return false, ErrStoreDown
	}
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

// TeacherStore соблюдает уникальность (name, university, program) как индекс в БД
type TeacherStore struct {
	mu    sync.Mutex
	items []*model.Teacher
	// FailNames имена, создание которых падает с произвольной ошибкой
	FailNames map[string]bool
	// HideExisting заставляет ExistingNames ничего не находить, как при гонке двух сохранений
	HideExisting bool
}

func NewTeacherStore() *TeacherStore {
	return &TeacherStore{FailNames: make(map[string]bool)}
}

func (s *TeacherStore) Create(_ context.Context, teacher *model.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNames[teacher.Name] {
		return ErrStoreDown
	}
	for _, t := range s.items {
		if t.Name == teacher.Name && t.University == teacher.University && t.Program == teacher.Program {
			return &pgconn.PgError{Code: "23505", ConstraintName: "teachers_name_university_program_key"}
		}
	}

	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}
	teacher.CreatedAt = time.Now()
	stored := *teacher
	s.items = append(s.items, &stored)
	return nil
}

func (s *TeacherStore) ExistingNames(_ context.Context, university, program string, names []string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool)
	if s.HideExisting {
		return existing, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	for _, t := range s.items {
		if t.University == university && t.Program == program && wanted[t.Name] {
			existing[t.Name] = true
		}
	}
	return existing, nil
}

func (s *TeacherStore) List(_ context.Context, university, program string) ([]*model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*model.Teacher{}
	for _, t := range s.items {
		if (university == "" || t.University == university) && (program == "" || t.Program == program) {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Len количество сохранённых преподавателей
func (s *TeacherStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
