package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HolidayStore хранилище праздников
type HolidayStore interface {
	Upsert(ctx context.Context, holiday *model.Holiday) (bool, error)
	GetAll(ctx context.Context) ([]*model.Holiday, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Принимаемые форматы даты, храним всегда в model.HolidayDateLayout
var holidayDateLayouts = []string{model.HolidayDateLayout, "02-01-2006"}

type HolidayService struct {
	holidays HolidayStore
	logger   *zap.Logger
}

func NewHolidayService(holidays HolidayStore, logger *zap.Logger) *HolidayService {
	return &HolidayService{
		holidays: holidays,
		logger:   logger,
	}
}

// AddOrUpdate добавляет праздник или подтверждает существующую пару (name, date)
func (s *HolidayService) AddOrUpdate(ctx context.Context, name, date string) (*model.Holiday, bool, error) {
	name = strings.TrimSpace(name)
	date = strings.TrimSpace(date)
	if name == "" || date == "" {
		return nil, false, fmt.Errorf("%w: name and date are required", ErrValidation)
	}

	normalized, err := NormalizeHolidayDate(date)
	if err != nil {
		return nil, false, err
	}

	holiday := &model.Holiday{Name: name, Date: normalized}
	created, err := s.holidays.Upsert(ctx, holiday)
	if err != nil {
		s.logger.Error("Failed to upsert holiday",
			zap.String("name", name),
			zap.String("date", normalized),
			zap.Error(err))
		return nil, false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.logger.Info("Holiday saved",
		zap.String("holiday_id", holiday.ID.String()),
		zap.String("date", normalized),
		zap.Bool("created", created))

	return holiday, created, nil
}

// ListAll возвращает все праздники
func (s *HolidayService) ListAll(ctx context.Context) ([]*model.Holiday, error) {
	holidays, err := s.holidays.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list holidays", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return holidays, nil
}

// DeleteByID удаляет праздник по строковому идентификатору
func (s *HolidayService) DeleteByID(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return fmt.Errorf("%w: malformed holiday id %q", ErrValidation, rawID)
	}

	deleted, err := s.holidays.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete holiday",
			zap.String("holiday_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if !deleted {
		return fmt.Errorf("holiday %s: %w", id, ErrNotFound)
	}

	s.logger.Info("Holiday deleted", zap.String("holiday_id", id.String()))
	return nil
}

// NormalizeHolidayDate приводит YYYY-MM-DD или DD-MM-YYYY к YYYY-MM-DD
func NormalizeHolidayDate(date string) (string, error) {
	for _, layout := range holidayDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format(model.HolidayDateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD or DD-MM-YYYY", ErrValidation, date)
}
