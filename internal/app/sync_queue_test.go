package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Freeeeeet/schedule_api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSync struct {
	mu      sync.Mutex
	seen    []string
	gate    chan struct{}
	failIDs map[string]bool
	panicID string
}

func (r *recordingSync) SyncFromSchedule(_ context.Context, schedule *model.Schedule) (int, error) {
	if r.gate != nil {
		<-r.gate
	}
	if schedule.ID == r.panicID {
		panic("boom")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, schedule.ID)
	if r.failIDs[schedule.ID] {
		return 0, errors.New("sync failed")
	}
	return 1, nil
}

func (r *recordingSync) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

func TestTeacherSyncQueueProcessesJobs(t *testing.T) {
	syncer := &recordingSync{}
	q := NewTeacherSyncQueue(syncer, 2, 8, zap.NewNop())
	q.Start(context.Background())

	require.True(t, q.Enqueue(&model.Schedule{ID: "a"}))
	require.True(t, q.Enqueue(&model.Schedule{ID: "b"}))
	q.Stop()

	assert.ElementsMatch(t, []string{"a", "b"}, syncer.ids())
}

func TestTeacherSyncQueueRejectsWhenFull(t *testing.T) {
	q := NewTeacherSyncQueue(&recordingSync{}, 1, 1, zap.NewNop())

	// без запущенных обработчиков буфер не разгружается
	assert.True(t, q.Enqueue(&model.Schedule{ID: "a"}))
	assert.False(t, q.Enqueue(&model.Schedule{ID: "b"}))

	q.Stop()
}

func TestTeacherSyncQueueStopDrainsPending(t *testing.T) {
	syncer := &recordingSync{gate: make(chan struct{})}
	q := NewTeacherSyncQueue(syncer, 1, 4, zap.NewNop())
	q.Start(context.Background())

	for _, id := range []string{"a", "b", "c"} {
		require.True(t, q.Enqueue(&model.Schedule{ID: id}))
	}
	close(syncer.gate)
	q.Stop()

	assert.Equal(t, []string{"a", "b", "c"}, syncer.ids())
}

func TestTeacherSyncQueueEnqueueAfterStop(t *testing.T) {
	q := NewTeacherSyncQueue(&recordingSync{}, 1, 4, zap.NewNop())
	q.Start(context.Background())
	q.Stop()

	assert.False(t, q.Enqueue(&model.Schedule{ID: "late"}))
	assert.NotPanics(t, q.Stop)
}

func TestTeacherSyncQueueSurvivesFailures(t *testing.T) {
	syncer := &recordingSync{
		failIDs: map[string]bool{"bad": true},
		panicID: "panic",
	}
	q := NewTeacherSyncQueue(syncer, 1, 8, zap.NewNop())
	q.Start(context.Background())

	require.True(t, q.Enqueue(&model.Schedule{ID: "bad"}))
	require.True(t, q.Enqueue(&model.Schedule{ID: "panic"}))
	require.True(t, q.Enqueue(&model.Schedule{ID: "good"}))
	q.Stop()

	assert.Equal(t, []string{"bad", "good"}, syncer.ids())
}
