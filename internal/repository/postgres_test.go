package repository

import (
	"context"
	"os"
	"testing"

	"github.com/Freeeeeet/schedule_api/internal/app"
	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/Freeeeeet/schedule_api/internal/repository/base"
	"github.com/Freeeeeet/schedule_api/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testPool подключается к TEST_DB_DSN, применяет миграции и очищает таблицы
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := app.NewMigrator(pool, migrations.FS, ".", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Run(ctx))
	require.NoError(t, migrator.Close())

	_, err = pool.Exec(ctx, `TRUNCATE holidays, schedules, teachers`)
	require.NoError(t, err)

	return pool
}

func TestHolidayUpsertReportsInsert(t *testing.T) {
	repo := NewHolidayRepository(testPool(t))
	ctx := context.Background()

	first := &model.Holiday{Name: "Eid", Date: "2025-03-31"}
	created, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	second := &model.Holiday{Name: "Eid", Date: "2025-03-31"}
	created, err = repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestScheduleUpsertReplacesDays(t *testing.T) {
	repo := NewScheduleRepository(testPool(t), zap.NewNop())
	ctx := context.Background()

	schedule := &model.Schedule{
		ID:         "CS-A",
		Semester:   "Fall 2024",
		Program:    "BSCS",
		Section:    "A",
		University: "UET",
		Schedule: model.WeekSchedule{
			model.Monday: {{Period: 1, Instructor: "Dr. A", ClassType: model.ClassTypeTheory}},
		},
	}
	created, err := repo.Upsert(ctx, schedule)
	require.NoError(t, err)
	assert.True(t, created)

	replacement := &model.Schedule{
		ID:         "CS-A",
		Semester:   "Fall 2024",
		Program:    "BSCS",
		Section:    "B",
		University: "UET",
		Schedule: model.WeekSchedule{
			model.Friday: {{Period: 3, Instructor: "Dr. C", ClassType: model.ClassTypeLab}},
		},
	}
	created, err = repo.Upsert(ctx, replacement)
	require.NoError(t, err)
	assert.False(t, created)

	found, err := repo.GetByID(ctx, "CS-A")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "B", found.Section)
	assert.Equal(t, replacement.Schedule, found.Schedule)

	ids, err := repo.GetIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CS-A"}, ids)

	missing, err := repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTeacherCreateDuplicateIsUniqueViolation(t *testing.T) {
	repo := NewTeacherRepository(testPool(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Teacher{Name: "Dr. A", University: "UET", Program: "BSCS"}))

	err := repo.Create(ctx, &model.Teacher{Name: "Dr. A", University: "UET", Program: "BSCS"})
	assert.True(t, base.IsUniqueViolation(err))

	require.NoError(t, repo.Create(ctx, &model.Teacher{Name: "Dr. A", University: "UET", Program: "BSEE"}))

	existing, err := repo.ExistingNames(ctx, "UET", "BSCS", []string{"Dr. A", "Dr. B"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Dr. A": true}, existing)

	teachers, err := repo.List(ctx, "UET", "")
	require.NoError(t, err)
	assert.Len(t, teachers, 2)
}
