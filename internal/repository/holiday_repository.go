package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/Freeeeeet/schedule_api/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HolidayRepository struct {
	*base.Repository
}

func NewHolidayRepository(pool *pgxpool.Pool) *HolidayRepository {
	return &HolidayRepository{Repository: base.NewRepository(pool)}
}

// Upsert добавляет праздник или обновляет updated_at существующей пары (name, date).
// created = true если строка была вставлена.
func (r *HolidayRepository) Upsert(ctx context.Context, holiday *model.Holiday) (bool, error) {
	query := `
		INSERT INTO holidays (id, name, date)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, date) DO UPDATE SET updated_at = now()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
	`

	var created bool
	err := r.QueryRow(ctx, query, uuid.New(), holiday.Name, holiday.Date).Scan(
		&holiday.ID,
		&holiday.CreatedAt,
		&holiday.UpdatedAt,
		&created,
	)
	if err != nil {
		return false, fmt.Errorf("upsert holiday: %w", err)
	}

	return created, nil
}

// GetAll возвращает все праздники по дате
func (r *HolidayRepository) GetAll(ctx context.Context) ([]*model.Holiday, error) {
	query := `
		SELECT id, name, date, created_at, updated_at
		FROM holidays
		ORDER BY date, name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get holidays: %w", err)
	}
	defer rows.Close()

	holidays := []*model.Holiday{}
	for rows.Next() {
		var holiday model.Holiday
		err := rows.Scan(
			&holiday.ID,
			&holiday.Name,
			&holiday.Date,
			&holiday.CreatedAt,
			&holiday.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holidays = append(holidays, &holiday)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holidays: %w", err)
	}

	return holidays, nil
}

// Delete удаляет праздник, возвращает false если его не было
func (r *HolidayRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete holiday: %w", err)
	}
	return affected > 0, nil
}
