package profile

import "context"

// PlayerFilter narrows public player listings.
type PlayerFilter struct {
	Sport         Sport
	CompletedOnly bool
}

// Repository describes profile persistence needs from use cases.
//
// Save replaces the whole record. It succeeds only when the stored revision
// still equals expectedRevision and returns the stored record with its new
// revision; otherwise it fails with ErrRevisionConflict.
type Repository interface {
	FindByID(ctx context.Context, kind Kind, id string) (Profile, bool, error)
	Save(ctx context.Context, p Profile, expectedRevision int64) (Profile, error)
	DeleteByID(ctx context.Context, kind Kind, id string) error
	ListPlayers(ctx context.Context, filter PlayerFilter) ([]Player, error)
	ListClubs(ctx context.Context) ([]Club, error)
}
