package httpapi

import (
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/leaderboard"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	"github.com/riskibarqy/talent-scout/internal/usecase"
)

type accountDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ProfileID string    `json:"profileId"`
	CreatedAt time.Time `json:"createdAt"`
}

type authDTO struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Account   accountDTO `json:"account"`
}

type performanceMetricDTO struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
}

type playerDTO struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Sport             string                 `json:"sport"`
	Age               int                    `json:"age"`
	Gender            string                 `json:"gender"`
	Location          string                 `json:"location"`
	Mobile            string                 `json:"mobile"`
	Height            float64                `json:"height"`
	Weight            float64                `json:"weight"`
	DreamClub         string                 `json:"dreamClub"`
	Skills            []string               `json:"skills"`
	AchievementsText  string                 `json:"achievementsText"`
	AchievementsImage string                 `json:"achievementsImage"`
	PerformanceData   []performanceMetricDTO `json:"performanceData"`
	ProfileCompleted  bool                   `json:"profileCompleted"`
	Revision          int64                  `json:"revision"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

type clubDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	FoundationDate   string    `json:"foundationDate"`
	ContactPerson    string    `json:"contactPerson"`
	ContactMobile    string    `json:"contactMobile"`
	ContactEmail     string    `json:"contactEmail"`
	Logo             string    `json:"logo"`
	Affiliation      string    `json:"affiliation"`
	ProfileCompleted bool      `json:"profileCompleted"`
	Revision         int64     `json:"revision"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type leaderboardEntryDTO struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Sport    string  `json:"sport"`
	Location string  `json:"location"`
	Score    float64 `json:"score"`
}

type leaderboardDTO struct {
	Entries     []leaderboardEntryDTO `json:"entries"`
	RefreshedAt time.Time             `json:"refreshedAt"`
}

func authToDTO(result usecase.AuthResult) authDTO {
	return authDTO{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Account:   accountToDTO(result.Account),
	}
}

func accountToDTO(a account.Account) accountDTO {
	return accountDTO{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		ProfileID: a.ProfileID,
		CreatedAt: a.CreatedAt,
	}
}

// profileToDTO returns the variant body only; the kind is already in the route.
func profileToDTO(p profile.Profile) any {
	switch {
	case p.Kind == profile.KindPlayer && p.Player != nil:
		return playerToDTO(*p.Player)
	case p.Kind == profile.KindClub && p.Club != nil:
		return clubToDTO(*p.Club)
	default:
		return nil
	}
}

func playerToDTO(p profile.Player) playerDTO {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	metrics := make([]performanceMetricDTO, 0, len(p.PerformanceData))
	for _, m := range p.PerformanceData {
		metrics = append(metrics, performanceMetricDTO{Metric: m.Metric, Value: m.Value, Unit: m.Unit})
	}

	return playerDTO{
		ID:                p.ID,
		Name:              p.Name,
		Sport:             string(p.Sport),
		Age:               p.Age,
		Gender:            string(p.Gender),
		Location:          p.Location,
		Mobile:            p.Mobile,
		Height:            p.Height,
		Weight:            p.Weight,
		DreamClub:         p.DreamClub,
		Skills:            skills,
		AchievementsText:  p.AchievementsText,
		AchievementsImage: p.AchievementsImage,
		PerformanceData:   metrics,
		ProfileCompleted:  p.ProfileCompleted,
		Revision:          p.Revision,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func clubToDTO(c profile.Club) clubDTO {
	var foundation string
	if c.FoundationDate != nil {
		foundation = c.FoundationDate.Format(time.DateOnly)
	}

	return clubDTO{
		ID:               c.ID,
		Name:             c.Name,
		Address:          c.Address,
		FoundationDate:   foundation,
		ContactPerson:    c.ContactPerson,
		ContactMobile:    c.ContactMobile,
		ContactEmail:     c.ContactEmail,
		Logo:             c.Logo,
		Affiliation:      c.Affiliation,
		ProfileCompleted: c.ProfileCompleted,
		Revision:         c.Revision,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func leaderboardToDTO(result usecase.LeaderboardResult) leaderboardDTO {
	entries := make([]leaderboardEntryDTO, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, leaderboardEntryToDTO(e))
	}
	return leaderboardDTO{Entries: entries, RefreshedAt: result.RefreshedAt}
}

func leaderboardEntryToDTO(e leaderboard.Entry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:     e.Rank,
		PlayerID: e.PlayerID,
		Name:     e.Name,
		Sport:    string(e.Sport),
		Location: e.Location,
		Score:    e.Score,
	}
}
