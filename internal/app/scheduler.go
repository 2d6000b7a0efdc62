package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
)

const leaderboardRefreshTimeout = time.Minute

type leaderboardRefresher interface {
	Refresh(ctx context.Context) error
}

// newLeaderboardScheduler rebuilds the leaderboard snapshot on a fixed
// interval, starting as soon as the scheduler starts. Overlapping runs are
// skipped rather than queued.
func newLeaderboardScheduler(board leaderboardRefresher, interval time.Duration, logger *logging.Logger) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			refreshLeaderboard(board, logger)
		}),
		gocron.WithName("leaderboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("schedule leaderboard refresh: %w", err)
	}
	return scheduler, nil
}

func refreshLeaderboard(board leaderboardRefresher, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), leaderboardRefreshTimeout)
	defer cancel()

	started := time.Now()
	if err := board.Refresh(ctx); err != nil {
		logger.ErrorContext(ctx, "leaderboard refresh failed", "error", err)
		return
	}
	logger.DebugContext(ctx, "leaderboard refreshed", "duration_ms", time.Since(started).Milliseconds())
}
