package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/Freeeeeet/schedule_api/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт преподавателя. Дубликат (name, university, program)
// возвращается как ошибка unique_violation, см. base.IsUniqueViolation.
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}

	query := `
		INSERT INTO teachers (id, name, university, program, email, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		teacher.ID,
		teacher.Name,
		teacher.University,
		teacher.Program,
		teacher.Email,
		teacher.PhoneNumber,
	).Scan(&teacher.CreatedAt)

	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// ExistingNames возвращает те имена из списка, которые уже есть в рамках университета и программы
func (r *TeacherRepository) ExistingNames(ctx context.Context, university, program string, names []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(names) == 0 {
		return existing, nil
	}

	query := `
		SELECT name
		FROM teachers
		WHERE university = $1 AND program = $2 AND name = ANY($3)
	`

	rows, err := r.Query(ctx, query, university, program, names)
	if err != nil {
		return nil, fmt.Errorf("get existing teachers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan teacher name: %w", err)
		}
		existing[name] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teacher names: %w", err)
	}

	return existing, nil
}

// List возвращает преподавателей, пустой фильтр не ограничивает выборку
func (r *TeacherRepository) List(ctx context.Context, university, program string) ([]*model.Teacher, error) {
	query := `
		SELECT id, name, university, program, email, phone_number, created_at
		FROM teachers
		WHERE ($1::text = '' OR university = $1) AND ($2::text = '' OR program = $2)
		ORDER BY name
	`

	rows, err := r.Query(ctx, query, university, program)
	if err != nil {
		return nil, fmt.Errorf("get teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*model.Teacher{}
	for rows.Next() {
		var teacher model.Teacher
		err := rows.Scan(
			&teacher.ID,
			&teacher.Name,
			&teacher.University,
			&teacher.Program,
			&teacher.Email,
			&teacher.PhoneNumber,
			&teacher.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, &teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teachers: %w", err)
	}

	return teachers, nil
}
