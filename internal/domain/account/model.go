package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/profile"
)

// Role is fixed at signup and selects the profile variant the account owns.
type Role string

const (
	RolePlayer Role = "player"
	RoleClub   Role = "club"
)

func ParseRole(v string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RolePlayer:
		return RolePlayer, nil
	case RoleClub:
		return RoleClub, nil
	default:
		return "", fmt.Errorf("%w: role %q", ErrInvalidRole, v)
	}
}

// Kind returns the profile kind owned by accounts with this role.
func (r Role) Kind() profile.Kind {
	return profile.Kind(r)
}

type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	ProfileID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the identity resolved from a bearer credential.
type Principal struct {
	AccountID string
	Role      Role
	ProfileID string
}

// NormalizeEmail lower-cases and trims an address so lookups are case insensitive.
func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
