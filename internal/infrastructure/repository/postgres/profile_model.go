package postgres

import (
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/lib/pq"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
)

const (
	playerProfilesTable = "player_profiles"
	clubProfilesTable   = "club_profiles"
)

type playerProfileTableModel struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Sport             string         `db:"sport"`
	Age               int            `db:"age"`
	Gender            string         `db:"gender"`
	Location          string         `db:"location"`
	Mobile            string         `db:"mobile"`
	Height            float64        `db:"height"`
	Weight            float64        `db:"weight"`
	DreamClub         string         `db:"dream_club"`
	Skills            pq.StringArray `db:"skills"`
	AchievementsText  string         `db:"achievements_text"`
	AchievementsImage string         `db:"achievements_image"`
	PerformanceData   []byte         `db:"performance_data"`
	ProfileCompleted  bool           `db:"profile_completed"`
	Revision          int64          `db:"revision"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// playerProfileWriteModel holds the columns a save rewrites. Identity,
// revision and timestamps are managed by the repository.
type playerProfileWriteModel struct {
	Name              string         `db:"name"`
	Sport             string         `db:"sport"`
	Age               int            `db:"age"`
	Gender            string         `db:"gender"`
	Location          string         `db:"location"`
	Mobile            string         `db:"mobile"`
	Height            float64        `db:"height"`
	Weight            float64        `db:"weight"`
	DreamClub         string         `db:"dream_club"`
	Skills            pq.StringArray `db:"skills"`
	AchievementsText  string         `db:"achievements_text"`
	AchievementsImage string         `db:"achievements_image"`
	PerformanceData   string         `db:"performance_data"`
	ProfileCompleted  bool           `db:"profile_completed"`
}

type playerProfileInsertModel struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Sport             string         `db:"sport"`
	Age               int            `db:"age"`
	Gender            string         `db:"gender"`
	Location          string         `db:"location"`
	Mobile            string         `db:"mobile"`
	Height            float64        `db:"height"`
	Weight            float64        `db:"weight"`
	DreamClub         string         `db:"dream_club"`
	Skills            pq.StringArray `db:"skills"`
	AchievementsText  string         `db:"achievements_text"`
	AchievementsImage string         `db:"achievements_image"`
	PerformanceData   string         `db:"performance_data"`
	ProfileCompleted  bool           `db:"profile_completed"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type clubProfileTableModel struct {
	ID               string       `db:"id"`
	Name             string       `db:"name"`
	Address          string       `db:"address"`
	FoundationDate   sql.NullTime `db:"foundation_date"`
	ContactPerson    string       `db:"contact_person"`
	ContactMobile    string       `db:"contact_mobile"`
	ContactEmail     string       `db:"contact_email"`
	Logo             string       `db:"logo"`
	Affiliation      string       `db:"affiliation"`
	ProfileCompleted bool         `db:"profile_completed"`
	Revision         int64        `db:"revision"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
}

type clubProfileWriteModel struct {
	Name             string     `db:"name"`
	Address          string     `db:"address"`
	FoundationDate   *time.Time `db:"foundation_date"`
	ContactPerson    string     `db:"contact_person"`
	ContactMobile    string     `db:"contact_mobile"`
	ContactEmail     string     `db:"contact_email"`
	Logo             string     `db:"logo"`
	Affiliation      string     `db:"affiliation"`
	ProfileCompleted bool       `db:"profile_completed"`
}

type clubProfileInsertModel struct {
	ID               string     `db:"id"`
	Name             string     `db:"name"`
	Address          string     `db:"address"`
	FoundationDate   *time.Time `db:"foundation_date"`
	ContactPerson    string     `db:"contact_person"`
	ContactMobile    string     `db:"contact_mobile"`
	ContactEmail     string     `db:"contact_email"`
	Logo             string     `db:"logo"`
	Affiliation      string     `db:"affiliation"`
	ProfileCompleted bool       `db:"profile_completed"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func playerWriteModel(p profile.Player) (playerProfileWriteModel, error) {
	performance, err := profile.EncodePerformanceData(p.PerformanceData)
	if err != nil {
		return playerProfileWriteModel{}, fmt.Errorf("encode performance data: %w", err)
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return playerProfileWriteModel{
		Name:              p.Name,
		Sport:             string(p.Sport),
		Age:               p.Age,
		Gender:            string(p.Gender),
		Location:          p.Location,
		Mobile:            p.Mobile,
		Height:            p.Height,
		Weight:            p.Weight,
		DreamClub:         p.DreamClub,
		Skills:            pq.StringArray(skills),
		AchievementsText:  p.AchievementsText,
		AchievementsImage: p.AchievementsImage,
		PerformanceData:   performance,
		ProfileCompleted:  p.ProfileCompleted,
	}, nil
}

func playerFromRow(row playerProfileTableModel) (profile.Player, error) {
	metrics := []profile.PerformanceMetric{}
	if len(row.PerformanceData) > 0 {
		if err := sonic.Unmarshal(row.PerformanceData, &metrics); err != nil {
			return profile.Player{}, fmt.Errorf("decode performance data of player %s: %w", row.ID, err)
		}
	}
	skills := []string(row.Skills)
	if skills == nil {
		skills = []string{}
	}
	return profile.Player{
		ID:                row.ID,
		Name:              row.Name,
		Sport:             profile.Sport(row.Sport),
		Age:               row.Age,
		Gender:            profile.Gender(row.Gender),
		Location:          row.Location,
		Mobile:            row.Mobile,
		Height:            row.Height,
		Weight:            row.Weight,
		DreamClub:         row.DreamClub,
		Skills:            skills,
		AchievementsText:  row.AchievementsText,
		AchievementsImage: row.AchievementsImage,
		PerformanceData:   metrics,
		ProfileCompleted:  row.ProfileCompleted,
		Revision:          row.Revision,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}, nil
}

func clubWriteModel(c profile.Club) clubProfileWriteModel {
	return clubProfileWriteModel{
		Name:             c.Name,
		Address:          c.Address,
		FoundationDate:   c.FoundationDate,
		ContactPerson:    c.ContactPerson,
		ContactMobile:    c.ContactMobile,
		ContactEmail:     c.ContactEmail,
		Logo:             c.Logo,
		Affiliation:      c.Affiliation,
		ProfileCompleted: c.ProfileCompleted,
	}
}

func clubFromRow(row clubProfileTableModel) profile.Club {
	var foundation *time.Time
	if row.FoundationDate.Valid {
		d := row.FoundationDate.Time.UTC()
		foundation = &d
	}
	return profile.Club{
		ID:               row.ID,
		Name:             row.Name,
		Address:          row.Address,
		FoundationDate:   foundation,
		ContactPerson:    row.ContactPerson,
		ContactMobile:    row.ContactMobile,
		ContactEmail:     row.ContactEmail,
		Logo:             row.Logo,
		Affiliation:      row.Affiliation,
		ProfileCompleted: row.ProfileCompleted,
		Revision:         row.Revision,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func playerInsertModel(p profile.Player) (playerProfileInsertModel, error) {
	w, err := playerWriteModel(p)
	if err != nil {
		return playerProfileInsertModel{}, err
	}
	return playerProfileInsertModel{
		ID:                p.ID,
		Name:              w.Name,
		Sport:             w.Sport,
		Age:               w.Age,
		Gender:            w.Gender,
		Location:          w.Location,
		Mobile:            w.Mobile,
		Height:            w.Height,
		Weight:            w.Weight,
		DreamClub:         w.DreamClub,
		Skills:            w.Skills,
		AchievementsText:  w.AchievementsText,
		AchievementsImage: w.AchievementsImage,
		PerformanceData:   w.PerformanceData,
		ProfileCompleted:  w.ProfileCompleted,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}, nil
}

func clubInsertModel(c profile.Club) clubProfileInsertModel {
	w := clubWriteModel(c)
	return clubProfileInsertModel{
		ID:               c.ID,
		Name:             w.Name,
		Address:          w.Address,
		FoundationDate:   w.FoundationDate,
		ContactPerson:    w.ContactPerson,
		ContactMobile:    w.ContactMobile,
		ContactEmail:     w.ContactEmail,
		Logo:             w.Logo,
		Affiliation:      w.Affiliation,
		ProfileCompleted: w.ProfileCompleted,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
