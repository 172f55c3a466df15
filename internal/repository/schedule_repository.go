package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/Freeeeeet/schedule_api/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ScheduleRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewScheduleRepository(pool *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Upsert вставляет расписание или целиком заменяет существующее с тем же ID.
// Недельная структура перезаписывается полностью, без слияния пар.
func (r *ScheduleRepository) Upsert(ctx context.Context, schedule *model.Schedule) (bool, error) {
	days, err := json.Marshal(weekOrEmpty(schedule.Schedule))
	if err != nil {
		return false, fmt.Errorf("marshal schedule days: %w", err)
	}

	query := `
		INSERT INTO schedules (schedule_id, semester, program, section, university, days)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (schedule_id) DO UPDATE
		SET semester = EXCLUDED.semester,
		    program = EXCLUDED.program,
		    section = EXCLUDED.section,
		    university = EXCLUDED.university,
		    days = EXCLUDED.days,
		    updated_at = now()
		RETURNING created_at, updated_at, (xmax = 0) AS inserted
	`

	var created bool
	err = r.QueryRow(
		ctx, query,
		schedule.ID,
		schedule.Semester,
		schedule.Program,
		schedule.Section,
		schedule.University,
		days,
	).Scan(&schedule.CreatedAt, &schedule.UpdatedAt, &created)

	if err != nil {
		r.logger.Error("Failed to upsert schedule",
			zap.String("schedule_id", schedule.ID),
			zap.Error(err))
		return false, fmt.Errorf("upsert schedule: %w", err)
	}

	return created, nil
}

// GetIDs возвращает идентификаторы всех расписаний
func (r *ScheduleRepository) GetIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Query(ctx, `SELECT schedule_id FROM schedules ORDER BY schedule_id`)
	if err != nil {
		return nil, fmt.Errorf("get schedule ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan schedule id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule ids: %w", err)
	}

	return ids, nil
}

// GetByID получает расписание по ID, nil если не найдено
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	query := `
		SELECT schedule_id, semester, program, section, university, days, created_at, updated_at
		FROM schedules
		WHERE schedule_id = $1
	`

	var (
		schedule model.Schedule
		days     []byte
	)
	err := r.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.Semester,
		&schedule.Program,
		&schedule.Section,
		&schedule.University,
		&days,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}

	if err := json.Unmarshal(days, &schedule.Schedule); err != nil {
		return nil, fmt.Errorf("unmarshal schedule days: %w", err)
	}

	return &schedule, nil
}

// Delete удаляет расписание, возвращает false если его не было
func (r *ScheduleRepository) Delete(ctx context.Context, id string) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM schedules WHERE schedule_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete schedule: %w", err)
	}
	return affected > 0, nil
}

func weekOrEmpty(week model.WeekSchedule) model.WeekSchedule {
	if week == nil {
		return model.WeekSchedule{}
	}
	return week
}
