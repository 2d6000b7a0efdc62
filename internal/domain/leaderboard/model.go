package leaderboard

import (
	"cmp"
	"slices"
	"strings"

	"github.com/riskibarqy/talent-scout/internal/domain/profile"
)

const DefaultLimit = 50

type Entry struct {
	Rank     int
	PlayerID string
	Name     string
	Sport    profile.Sport
	Location string
	Score    float64
}

// Score is the sum of every metric value divided by ten plus one point per listed skill.
func Score(p profile.Player) float64 {
	var total float64
	for _, m := range p.PerformanceData {
		total += m.Value / 10
	}
	return total + float64(len(p.Skills))
}

// EntryFor scores a single player. Rank is assigned later by Rank.
func EntryFor(p profile.Player) Entry {
	return Entry{
		PlayerID: p.ID,
		Name:     p.Name,
		Sport:    p.Sport,
		Location: p.Location,
		Score:    Score(p),
	}
}

// Rank filters entries by sport (empty means all), orders them by score
// descending with name as tie breaker and numbers the first limit entries from 1.
func Rank(entries []Entry, sport profile.Sport, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if sport != "" && e.Sport != sport {
			continue
		}
		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
