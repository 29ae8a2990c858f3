package scheduler

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legisync/internal/domain"
)

type fakeSyncer struct {
	calls atomic.Int32
}

func (f *fakeSyncer) SyncAll(ctx context.Context) *domain.SyncReport {
	f.calls.Add(1)
	return &domain.SyncReport{
		Success: true,
		Sources: map[string]domain.SourceResult{
			"congress": {Success: true, Count: 1},
		},
		Timestamp: time.Now().UTC(),
	}
}

func TestScheduler_RunsImmediatelyThenOnTicks(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	syncer := &fakeSyncer{}

	ctx, cancel := context.WithCancel(context.Background())
	sched := NewScheduler(syncer, 20*time.Millisecond, logger)

	done := make(chan error, 1)
	go func() {
		done <- sched.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		return syncer.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
