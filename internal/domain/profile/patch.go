package profile

import (
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// PlayerPatch is a typed partial update. A nil field is absent and keeps the
// stored value; a non-nil field overrides it, including with an empty value.
type PlayerPatch struct {
	Name              *string
	Sport             *string
	Age               *int
	Gender            *string
	Location          *string
	Mobile            *string
	Height            *float64
	Weight            *float64
	DreamClub         *string
	Skills            *[]string
	AchievementsText  *string
	AchievementsImage *string
	// PerformanceData holds the encoded metrics list; it is decoded during merge.
	PerformanceData *string
}

type ClubPatch struct {
	Name           *string
	Address        *string
	FoundationDate *string
	ContactPerson  *string
	ContactMobile  *string
	ContactEmail   *string
	Logo           *string
	Affiliation    *string
}

type Patch struct {
	Kind   Kind
	Player *PlayerPatch
	Club   *ClubPatch
}

// Upload field names accepted by InjectFile.
const (
	FieldAchievementsImage = "achievementsImage"
	FieldLogo              = "logo"
	FieldAffiliation       = "affiliation"
)

// FileFields returns the upload field names that may carry a file for kind.
func FileFields(kind Kind) []string {
	switch kind {
	case KindPlayer:
		return []string{FieldAchievementsImage}
	case KindClub:
		return []string{FieldLogo, FieldAffiliation}
	default:
		return nil
	}
}

// NormalizeFileField maps accepted aliases to the canonical field name.
func NormalizeFileField(field string) string {
	switch strings.TrimSpace(field) {
	case "achievementImage", FieldAchievementsImage:
		return FieldAchievementsImage
	default:
		return strings.TrimSpace(field)
	}
}

// InjectFile records the storage path of an uploaded file in the patch under
// field, overriding any value the caller sent for it.
func (p *Patch) InjectFile(field, path string) error {
	field = NormalizeFileField(field)
	switch p.Kind {
	case KindPlayer:
		if field != FieldAchievementsImage {
			return fmt.Errorf("%w: file field %q is not accepted for players", ErrInvalidPayload, field)
		}
		if p.Player == nil {
			p.Player = &PlayerPatch{}
		}
		p.Player.AchievementsImage = &path
	case KindClub:
		if p.Club == nil {
			p.Club = &ClubPatch{}
		}
		switch field {
		case FieldLogo:
			p.Club.Logo = &path
		case FieldAffiliation:
			p.Club.Affiliation = &path
		default:
			return fmt.Errorf("%w: file field %q is not accepted for clubs", ErrInvalidPayload, field)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidEnum, p.Kind)
	}
	return nil
}

// DecodePerformanceData parses the encoded metrics list.
func DecodePerformanceData(raw string) ([]PerformanceMetric, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: performanceData is empty", ErrInvalidPayload)
	}

	var items []PerformanceMetric
	if err := sonic.UnmarshalString(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode performanceData: %v", ErrInvalidPayload, err)
	}

	out := make([]PerformanceMetric, 0, len(items))
	for i, item := range items {
		item.Metric = strings.TrimSpace(item.Metric)
		item.Unit = strings.TrimSpace(item.Unit)
		if item.Metric == "" {
			return nil, fmt.Errorf("%w: performanceData[%d].metric is required", ErrInvalidPayload, i)
		}
		out = append(out, item)
	}
	return out, nil
}

// EncodePerformanceData is the inverse of DecodePerformanceData.
func EncodePerformanceData(items []PerformanceMetric) (string, error) {
	if items == nil {
		items = []PerformanceMetric{}
	}
	return sonic.MarshalString(items)
}
