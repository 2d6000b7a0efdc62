package account

import (
	"context"

	"github.com/riskibarqy/talent-scout/internal/domain/profile"
)

// Repository persists accounts together with the profile they own.
// CreateWithProfile and DeleteWithProfile are atomic: either both records
// change or neither does.
type Repository interface {
	CreateWithProfile(ctx context.Context, acc Account, p profile.Profile) error
	GetByEmail(ctx context.Context, email string) (Account, bool, error)
	GetByID(ctx context.Context, id string) (Account, bool, error)
	DeleteWithProfile(ctx context.Context, accountID string, kind profile.Kind, profileID string) error
}
