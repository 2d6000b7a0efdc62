package profile

import (
	"fmt"
	"strings"
	"time"
)

// MergeAndEvaluate applies patch on top of existing and recomputes the
// completion flag from the merged record. existing is never modified.
func MergeAndEvaluate(kind Kind, existing *Profile, patch Patch) (Profile, error) {
	if !kind.Valid() {
		return Profile{}, fmt.Errorf("%w: kind %q", ErrInvalidEnum, kind)
	}
	if existing == nil {
		return Profile{}, fmt.Errorf("%w: no stored %s profile to update", ErrNotFound, kind)
	}
	if err := existing.validate(); err != nil {
		return Profile{}, err
	}
	if existing.Kind != kind {
		return Profile{}, fmt.Errorf("%w: stored profile is %s, not %s", ErrInvalidPayload, existing.Kind, kind)
	}
	if patch.Kind != "" && patch.Kind != kind {
		return Profile{}, fmt.Errorf("%w: patch targets %s, not %s", ErrInvalidPayload, patch.Kind, kind)
	}

	merged := existing.Clone()
	switch kind {
	case KindPlayer:
		if patch.Club != nil {
			return Profile{}, fmt.Errorf("%w: club fields sent for a player profile", ErrInvalidPayload)
		}
		if err := mergePlayer(merged.Player, patch.Player); err != nil {
			return Profile{}, err
		}
		merged.Player.ProfileCompleted = PlayerComplete(*merged.Player)
	case KindClub:
		if patch.Player != nil {
			return Profile{}, fmt.Errorf("%w: player fields sent for a club profile", ErrInvalidPayload)
		}
		if err := mergeClub(merged.Club, patch.Club); err != nil {
			return Profile{}, err
		}
		merged.Club.ProfileCompleted = ClubComplete(*merged.Club)
	}

	return merged, nil
}

// PlayerComplete reports whether every required player field is set.
func PlayerComplete(p Player) bool {
	return present(p.Name) &&
		present(string(p.Sport)) &&
		present(p.Mobile) &&
		p.Age > 0 &&
		len(p.PerformanceData) > 0
}

// ClubComplete reports whether every required club field is set.
func ClubComplete(c Club) bool {
	return present(c.Name) &&
		present(c.Address) &&
		present(c.ContactPerson) &&
		present(c.ContactMobile) &&
		present(c.ContactEmail)
}

func present(v string) bool {
	return strings.TrimSpace(v) != ""
}

func mergePlayer(dst *Player, p *PlayerPatch) error {
	if p == nil {
		return nil
	}

	// Decode and validate everything before touching dst so a bad field
	// never leaves a half-merged record behind.
	var (
		sport   Sport
		gender  Gender
		metrics []PerformanceMetric
		err     error
	)
	if p.Sport != nil {
		if sport, err = ParseSport(*p.Sport); err != nil {
			return err
		}
	}
	if p.Gender != nil {
		if gender, err = ParseGender(*p.Gender); err != nil {
			return err
		}
	}
	if p.Age != nil && *p.Age < 0 {
		return fmt.Errorf("%w: age must be >= 0", ErrInvalidPayload)
	}
	if p.Height != nil && *p.Height < 0 {
		return fmt.Errorf("%w: height must be >= 0", ErrInvalidPayload)
	}
	if p.Weight != nil && *p.Weight < 0 {
		return fmt.Errorf("%w: weight must be >= 0", ErrInvalidPayload)
	}
	if p.PerformanceData != nil {
		if metrics, err = DecodePerformanceData(*p.PerformanceData); err != nil {
			return err
		}
	}

	setString(&dst.Name, p.Name)
	if p.Sport != nil {
		dst.Sport = sport
	}
	if p.Age != nil {
		dst.Age = *p.Age
	}
	if p.Gender != nil {
		dst.Gender = gender
	}
	setString(&dst.Location, p.Location)
	setString(&dst.Mobile, p.Mobile)
	if p.Height != nil {
		dst.Height = *p.Height
	}
	if p.Weight != nil {
		dst.Weight = *p.Weight
	}
	setString(&dst.DreamClub, p.DreamClub)
	if p.Skills != nil {
		dst.Skills = normalizeSkills(*p.Skills)
	}
	setString(&dst.AchievementsText, p.AchievementsText)
	setString(&dst.AchievementsImage, p.AchievementsImage)
	if p.PerformanceData != nil {
		dst.PerformanceData = metrics
	}
	return nil
}

func mergeClub(dst *Club, p *ClubPatch) error {
	if p == nil {
		return nil
	}

	var foundation *time.Time
	if p.FoundationDate != nil {
		parsed, err := ParseFoundationDate(*p.FoundationDate)
		if err != nil {
			return err
		}
		foundation = parsed
	}

	setString(&dst.Name, p.Name)
	setString(&dst.Address, p.Address)
	if p.FoundationDate != nil {
		dst.FoundationDate = foundation
	}
	setString(&dst.ContactPerson, p.ContactPerson)
	setString(&dst.ContactMobile, p.ContactMobile)
	setString(&dst.ContactEmail, p.ContactEmail)
	setString(&dst.Logo, p.Logo)
	setString(&dst.Affiliation, p.Affiliation)
	return nil
}

var foundationDateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseFoundationDate accepts a calendar date or an RFC 3339 timestamp.
// An empty value clears the date.
func ParseFoundationDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	for _, layout := range foundationDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: foundationDate %q is not a date", ErrInvalidPayload, v)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func normalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
