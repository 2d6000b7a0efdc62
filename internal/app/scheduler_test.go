package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/talent-scout/internal/platform/logging"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestLeaderboardScheduler_RunsImmediately(t *testing.T) {
	board := &countingRefresher{}
	scheduler, err := newLeaderboardScheduler(board, time.Hour, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	scheduler.Start()
	t.Cleanup(func() { _ = scheduler.Shutdown() })

	deadline := time.Now().Add(2 * time.Second)
	for board.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected leaderboard refresh to run on start")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRefreshLeaderboard_LogsFailure(t *testing.T) {
	board := &countingRefresher{err: errors.New("db down")}
	refreshLeaderboard(board, logging.NewNop())
	if board.calls.Load() != 1 {
		t.Fatalf("expected one refresh call, got %d", board.calls.Load())
	}
}
