package cache

import (
	"context"
	"slices"
	"strconv"

	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	basecache "github.com/riskibarqy/talent-scout/internal/platform/cache"
)

const (
	profileKeyPrefix     = "profile:id:"
	profileListKeyPrefix = "profile:list:"
)

func profileKey(kind profile.Kind, id string) string {
	return profileKeyPrefix + string(kind) + ":" + id
}

// ProfileRepository caches profile reads. Every write drops the affected
// record and all list entries.
type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) FindByID(ctx context.Context, kind profile.Kind, id string) (profile.Profile, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, profileKey(kind, id), func(ctx context.Context) (cachedProfileByID, error) {
		item, exists, err := r.next.FindByID(ctx, kind, id)
		if err != nil {
			return cachedProfileByID{}, err
		}
		return cachedProfileByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}
	if !cached.exists {
		return profile.Profile{}, false, nil
	}
	return cached.value.Clone(), true, nil
}

func (r *ProfileRepository) Save(ctx context.Context, p profile.Profile, expectedRevision int64) (profile.Profile, error) {
	saved, err := r.next.Save(ctx, p, expectedRevision)
	r.invalidate(ctx, p.Kind, p.ID())
	if err != nil {
		return profile.Profile{}, err
	}
	return saved, nil
}

func (r *ProfileRepository) DeleteByID(ctx context.Context, kind profile.Kind, id string) error {
	err := r.next.DeleteByID(ctx, kind, id)
	r.invalidate(ctx, kind, id)
	return err
}

func (r *ProfileRepository) ListPlayers(ctx context.Context, filter profile.PlayerFilter) ([]profile.Player, error) {
	key := profileListKeyPrefix + "player:" + string(filter.Sport) + ":" + strconv.FormatBool(filter.CompletedOnly)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]profile.Player, error) {
		return r.next.ListPlayers(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	out := make([]profile.Player, len(items))
	for i, item := range items {
		item.Skills = slices.Clone(item.Skills)
		item.PerformanceData = slices.Clone(item.PerformanceData)
		out[i] = item
	}
	return out, nil
}

func (r *ProfileRepository) ListClubs(ctx context.Context) ([]profile.Club, error) {
	items, err := basecache.Load(ctx, r.cache, profileListKeyPrefix+"club", func(ctx context.Context) ([]profile.Club, error) {
		return r.next.ListClubs(ctx)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *ProfileRepository) invalidate(ctx context.Context, kind profile.Kind, id string) {
	r.cache.Delete(ctx, profileKey(kind, id))
	r.cache.DeletePrefix(ctx, profileListKeyPrefix)
}

type cachedProfileByID struct {
	value  profile.Profile
	exists bool
}

// AccountRepository passes account operations through and keeps the profile
// cache consistent with the account level create and cascade delete.
type AccountRepository struct {
	next  account.Repository
	cache *basecache.Store
}

func NewAccountRepository(next account.Repository, cache *basecache.Store) *AccountRepository {
	return &AccountRepository{next: next, cache: cache}
}

func (r *AccountRepository) CreateWithProfile(ctx context.Context, acc account.Account, p profile.Profile) error {
	err := r.next.CreateWithProfile(ctx, acc, p)
	r.cache.Delete(ctx, profileKey(p.Kind, p.ID()))
	r.cache.DeletePrefix(ctx, profileListKeyPrefix)
	return err
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, bool, error) {
	return r.next.GetByEmail(ctx, email)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (account.Account, bool, error) {
	return r.next.GetByID(ctx, id)
}

func (r *AccountRepository) DeleteWithProfile(ctx context.Context, accountID string, kind profile.Kind, profileID string) error {
	err := r.next.DeleteWithProfile(ctx, accountID, kind, profileID)
	r.cache.Delete(ctx, profileKey(kind, profileID))
	r.cache.DeletePrefix(ctx, profileListKeyPrefix)
	return err
}
