package service_test

import (
	"context"
	"testing"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/Freeeeeet/schedule_api/internal/service"
	"github.com/Freeeeeet/schedule_api/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractTeacherNamesSplitsAndTrims(t *testing.T) {
	schedule := &model.Schedule{
		Schedule: model.WeekSchedule{
			model.Monday: {{Instructor: "Dr. A + Dr. B", ClassType: model.ClassTypeTheory}},
		},
	}

	assert.Equal(t, []string{"Dr. A", "Dr. B"}, service.ExtractTeacherNames(schedule))
}

func TestExtractTeacherNamesDeduplicatesInWeekdayOrder(t *testing.T) {
	schedule := &model.Schedule{
		Schedule: model.WeekSchedule{
			model.Friday:  {{Instructor: "Ms. C"}},
			model.Monday:  {{Instructor: "Dr. B"}, {Instructor: ""}, {Instructor: "   "}},
			model.Tuesday: {{Instructor: "Dr. B+Ms. C"}, {Instructor: "dr. b"}},
		},
	}

	names := service.ExtractTeacherNames(schedule)

	// регистр не нормализуется
	assert.Equal(t, []string{"Dr. B", "Ms. C", "dr. b"}, names)
}

func TestExtractTeacherNamesSkipsEmptyTokens(t *testing.T) {
	schedule := &model.Schedule{
		Schedule: model.WeekSchedule{
			model.Saturday: {{Instructor: " + Dr. D ++ "}},
		},
	}

	assert.Equal(t, []string{"Dr. D"}, service.ExtractTeacherNames(schedule))
	assert.Nil(t, service.ExtractTeacherNames(nil))
}

func TestSyncFromScheduleCreatesOnce(t *testing.T) {
	store := servicetest.NewTeacherStore()
	svc := service.NewTeacherService(store, zap.NewNop())
	schedule := sampleSchedule("CS-A")

	created, err := svc.SyncFromSchedule(context.Background(), schedule)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = svc.SyncFromSchedule(context.Background(), schedule)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 2, store.Len())

	teachers, err := svc.List(context.Background(), "UET", "BSCS")
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "Dr. A", teachers[0].Name)
	assert.Equal(t, "UET", teachers[0].University)
	assert.Equal(t, "BSCS", teachers[0].Program)
	assert.Empty(t, teachers[0].Email)
	assert.Empty(t, teachers[0].PhoneNumber)
}

func TestSyncFromScheduleScopesByUniversityAndProgram(t *testing.T) {
	store := servicetest.NewTeacherStore()
	svc := service.NewTeacherService(store, zap.NewNop())

	first := sampleSchedule("CS-A")
	other := sampleSchedule("EE-A")
	other.University = "NUST"

	_, err := svc.SyncFromSchedule(context.Background(), first)
	require.NoError(t, err)
	created, err := svc.SyncFromSchedule(context.Background(), other)
	require.NoError(t, err)

	assert.Equal(t, 2, created)
	assert.Equal(t, 4, store.Len())
}

func TestSyncFromScheduleSwallowsDuplicateKey(t *testing.T) {
	store := servicetest.NewTeacherStore()
	svc := service.NewTeacherService(store, zap.NewNop())
	schedule := sampleSchedule("CS-A")

	_, err := svc.SyncFromSchedule(context.Background(), schedule)
	require.NoError(t, err)

	// проверка существования ничего не видит, вставка упирается в уникальный индекс
	store.HideExisting = true
	created, err := svc.SyncFromSchedule(context.Background(), schedule)

	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 2, store.Len())
}

func TestSyncFromScheduleContinuesAfterFailure(t *testing.T) {
	store := servicetest.NewTeacherStore()
	store.FailNames["Dr. A"] = true
	svc := service.NewTeacherService(store, zap.NewNop())

	created, err := svc.SyncFromSchedule(context.Background(), sampleSchedule("CS-A"))

	require.NoError(t, err)
	assert.Equal(t, 1, created)

	teachers, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Dr. B", teachers[0].Name)
}
