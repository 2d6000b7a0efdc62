package profile

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind tags which variant a Profile carries. It always equals the owning
// account's role.
type Kind string

const (
	KindPlayer Kind = "player"
	KindClub   Kind = "club"
)

func ParseKind(v string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(v))) {
	case KindPlayer:
		return KindPlayer, nil
	case KindClub:
		return KindClub, nil
	default:
		return "", fmt.Errorf("%w: kind %q", ErrInvalidEnum, v)
	}
}

func (k Kind) Valid() bool {
	return k == KindPlayer || k == KindClub
}

type Sport string

const (
	SportFootball Sport = "Football"
	SportCricket  Sport = "Cricket"
)

var sports = []Sport{SportFootball, SportCricket}

// ParseSport accepts the canonical spelling in any letter case. An empty
// value is a cleared field, not an enum violation.
func ParseSport(v string) (Sport, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	for _, s := range sports {
		if strings.EqualFold(v, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: sport %q", ErrInvalidEnum, v)
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

var genders = []Gender{GenderMale, GenderFemale}

func ParseGender(v string) (Gender, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	for _, g := range genders {
		if strings.EqualFold(v, string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: gender %q", ErrInvalidEnum, v)
}

type PerformanceMetric struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
}

type Player struct {
	ID                string
	Name              string
	Sport             Sport
	Age               int
	Gender            Gender
	Location          string
	Mobile            string
	Height            float64
	Weight            float64
	DreamClub         string
	Skills            []string
	AchievementsText  string
	AchievementsImage string
	PerformanceData   []PerformanceMetric
	ProfileCompleted  bool
	Revision          int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Club struct {
	ID               string
	Name             string
	Address          string
	FoundationDate   *time.Time
	ContactPerson    string
	ContactMobile    string
	ContactEmail     string
	Logo             string
	Affiliation      string
	ProfileCompleted bool
	Revision         int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Profile is the tagged variant over Player and Club. Exactly one of the
// pointers is set and it matches Kind.
type Profile struct {
	Kind   Kind
	Player *Player
	Club   *Club
}

// NewEmpty returns the freshly created, incomplete profile paired with a new account.
func NewEmpty(kind Kind, id string, now time.Time) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, fmt.Errorf("%w: profile id is required", ErrInvalidPayload)
	}
	switch kind {
	case KindPlayer:
		return Profile{Kind: kind, Player: &Player{ID: id, CreatedAt: now, UpdatedAt: now}}, nil
	case KindClub:
		return Profile{Kind: kind, Club: &Club{ID: id, CreatedAt: now, UpdatedAt: now}}, nil
	default:
		return Profile{}, fmt.Errorf("%w: kind %q", ErrInvalidEnum, kind)
	}
}

func (p Profile) ID() string {
	switch {
	case p.Kind == KindPlayer && p.Player != nil:
		return p.Player.ID
	case p.Kind == KindClub && p.Club != nil:
		return p.Club.ID
	}
	return ""
}

func (p Profile) Revision() int64 {
	switch {
	case p.Kind == KindPlayer && p.Player != nil:
		return p.Player.Revision
	case p.Kind == KindClub && p.Club != nil:
		return p.Club.Revision
	}
	return 0
}

func (p Profile) Completed() bool {
	switch {
	case p.Kind == KindPlayer && p.Player != nil:
		return p.Player.ProfileCompleted
	case p.Kind == KindClub && p.Club != nil:
		return p.Club.ProfileCompleted
	}
	return false
}

// FileRefs lists the stored file paths the profile points at.
func (p Profile) FileRefs() []string {
	var out []string
	add := func(v string) {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	switch {
	case p.Kind == KindPlayer && p.Player != nil:
		add(p.Player.AchievementsImage)
	case p.Kind == KindClub && p.Club != nil:
		add(p.Club.Logo)
		add(p.Club.Affiliation)
	}
	return out
}

func (p Profile) validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: kind %q", ErrInvalidEnum, p.Kind)
	}
	if (p.Kind == KindPlayer) != (p.Player != nil) || (p.Kind == KindClub) != (p.Club != nil) {
		return fmt.Errorf("%w: profile variant does not match kind %q", ErrInvalidPayload, p.Kind)
	}
	return nil
}

// Clone returns a deep copy so callers can never alias stored slices.
func (p Profile) Clone() Profile {
	out := Profile{Kind: p.Kind}
	if p.Player != nil {
		cp := *p.Player
		cp.Skills = slices.Clone(p.Player.Skills)
		cp.PerformanceData = slices.Clone(p.Player.PerformanceData)
		out.Player = &cp
	}
	if p.Club != nil {
		cp := *p.Club
		if p.Club.FoundationDate != nil {
			d := *p.Club.FoundationDate
			cp.FoundationDate = &d
		}
		out.Club = &cp
	}
	return out
}
