package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/leaderboard"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	"github.com/sourcegraph/conc/iter"
)

const maxLeaderboardLimit = 100

type LeaderboardInput struct {
	Sport string
	Limit int
}

type LeaderboardResult struct {
	Entries     []leaderboard.Entry
	RefreshedAt time.Time
}

type leaderboardSnapshot struct {
	entries     []leaderboard.Entry
	refreshedAt time.Time
}

// LeaderboardService serves rankings from an in-process snapshot that is
// rebuilt by Refresh, normally on a schedule.
type LeaderboardService struct {
	profiles profile.Repository
	snapshot atomic.Pointer[leaderboardSnapshot]
	now      func() time.Time
}

func NewLeaderboardService(profiles profile.Repository) *LeaderboardService {
	return &LeaderboardService{
		profiles: profiles,
		now:      time.Now,
	}
}

// Refresh rescores every player and swaps in the new snapshot.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Refresh")
	defer span.End()

	players, err := s.profiles.ListPlayers(ctx, profile.PlayerFilter{})
	if err != nil {
		return fmt.Errorf("%w: list players: %v", ErrUpstreamFailure, err)
	}

	entries := iter.Map(players, func(p *profile.Player) leaderboard.Entry {
		return leaderboard.EntryFor(*p)
	})
	s.snapshot.Store(&leaderboardSnapshot{entries: entries, refreshedAt: s.now().UTC()})
	return nil
}

func (s *LeaderboardService) Top(ctx context.Context, input LeaderboardInput) (LeaderboardResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Top")
	defer span.End()

	sport, err := profile.ParseSport(input.Sport)
	if err != nil {
		return LeaderboardResult{}, err
	}
	if input.Limit < 0 {
		return LeaderboardResult{}, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	limit := min(input.Limit, maxLeaderboardLimit)

	snap := s.snapshot.Load()
	if snap == nil {
		if err := s.Refresh(ctx); err != nil {
			return LeaderboardResult{}, err
		}
		snap = s.snapshot.Load()
	}

	return LeaderboardResult{
		Entries:     leaderboard.Rank(snap.entries, sport, limit),
		RefreshedAt: snap.refreshedAt,
	}, nil
}
