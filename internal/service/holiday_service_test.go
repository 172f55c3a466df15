package service_test

import (
	"context"
	"testing"

	"github.com/Freeeeeet/schedule_api/internal/service"
	"github.com/Freeeeeet/schedule_api/internal/service/servicetest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHolidayAddTwiceKeepsOneRecord(t *testing.T) {
	store := servicetest.NewHolidayStore()
	svc := service.NewHolidayService(store, zap.NewNop())
	ctx := context.Background()

	first, created, err := svc.AddOrUpdate(ctx, "Eid", "2025-03-31")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.AddOrUpdate(ctx, "Eid", "2025-03-31")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHolidayDateFormats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-25", "2025-12-25"},
		{"25-12-2025", "2025-12-25"},
		{" 01-05-2025 ", "2025-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			svc := service.NewHolidayService(servicetest.NewHolidayStore(), zap.NewNop())

			holiday, _, err := svc.AddOrUpdate(context.Background(), "Holiday", tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, holiday.Date)
		})
	}
}

func TestHolidayDateFormatsShareRecord(t *testing.T) {
	svc := service.NewHolidayService(servicetest.NewHolidayStore(), zap.NewNop())
	ctx := context.Background()

	_, created, err := svc.AddOrUpdate(ctx, "Christmas", "2025-12-25")
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = svc.AddOrUpdate(ctx, "Christmas", "25-12-2025")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestHolidayAddValidation(t *testing.T) {
	svc := service.NewHolidayService(servicetest.NewHolidayStore(), zap.NewNop())
	ctx := context.Background()

	_, _, err := svc.AddOrUpdate(ctx, "", "2025-01-01")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, _, err = svc.AddOrUpdate(ctx, "New Year", "")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, _, err = svc.AddOrUpdate(ctx, "New Year", "01/01/2025")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, _, err = svc.AddOrUpdate(ctx, "New Year", "2025-13-01")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestHolidayDelete(t *testing.T) {
	svc := service.NewHolidayService(servicetest.NewHolidayStore(), zap.NewNop())
	ctx := context.Background()

	holiday, _, err := svc.AddOrUpdate(ctx, "Labour Day", "2025-05-01")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(ctx, holiday.ID.String()))

	err = svc.DeleteByID(ctx, holiday.ID.String())
	assert.ErrorIs(t, err, service.ErrNotFound)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHolidayDeleteMalformedID(t *testing.T) {
	svc := service.NewHolidayService(servicetest.NewHolidayStore(), zap.NewNop())

	err := svc.DeleteByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, service.ErrValidation)
	assert.NotErrorIs(t, err, service.ErrNotFound)
}

func TestHolidayDeleteMissingID(t *testing.T) {
	svc := service.NewHolidayService(servicetest.NewHolidayStore(), zap.NewNop())

	err := svc.DeleteByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestHolidayStoreFailure(t *testing.T) {
	store := servicetest.NewHolidayStore()
	store.Fail = true
	svc := service.NewHolidayService(store, zap.NewNop())
	ctx := context.Background()

	_, _, err := svc.AddOrUpdate(ctx, "Eid", "2025-03-31")
	assert.ErrorIs(t, err, service.ErrUpstream)

	_, err = svc.ListAll(ctx)
	assert.ErrorIs(t, err, service.ErrUpstream)

	err = svc.DeleteByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, service.ErrUpstream)
}

func TestHolidayListSortedByDate(t *testing.T) {
	svc := service.NewHolidayService(servicetest.NewHolidayStore(), zap.NewNop())
	ctx := context.Background()

	for _, h := range []struct{ name, date string }{
		{"Christmas", "2025-12-25"},
		{"New Year", "2025-01-01"},
		{"Labour Day", "01-05-2025"},
	} {
		_, _, err := svc.AddOrUpdate(ctx, h.name, h.date)
		require.NoError(t, err)
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "New Year", all[0].Name)
	assert.Equal(t, "Labour Day", all[1].Name)
	assert.Equal(t, "Christmas", all[2].Name)
}
