package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	profilemock "github.com/riskibarqy/talent-scout/internal/mocks/domain/profile"
	basecache "github.com/riskibarqy/talent-scout/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_SaveInvalidatesCachedReads(t *testing.T) {
	ctx := context.Background()
	stored, err := profile.NewEmpty(profile.KindClub, "club-1", time.Now())
	require.NoError(t, err)

	next := profilemock.NewRepository(t)
	next.On("FindByID", mock.Anything, profile.KindClub, "club-1").Return(stored, true, nil).Twice()
	next.On("ListClubs", mock.Anything).Return([]profile.Club{*stored.Club}, nil).Twice()
	next.On("Save", mock.Anything, mock.Anything, int64(0)).Return(stored, nil).Once()

	repo := NewProfileRepository(next, basecache.NewStore(time.Minute))

	for range 2 {
		_, found, err := repo.FindByID(ctx, profile.KindClub, "club-1")
		require.NoError(t, err)
		require.True(t, found)
		_, err = repo.ListClubs(ctx)
		require.NoError(t, err)
	}

	_, err = repo.Save(ctx, stored, 0)
	require.NoError(t, err)

	_, _, err = repo.FindByID(ctx, profile.KindClub, "club-1")
	require.NoError(t, err)
	_, err = repo.ListClubs(ctx)
	require.NoError(t, err)
}

func TestProfileRepository_CachesMisses(t *testing.T) {
	next := profilemock.NewRepository(t)
	next.On("FindByID", mock.Anything, profile.KindPlayer, "ghost").Return(profile.Profile{}, false, nil).Once()

	repo := NewProfileRepository(next, basecache.NewStore(time.Minute))
	for range 3 {
		_, found, err := repo.FindByID(context.Background(), profile.KindPlayer, "ghost")
		require.NoError(t, err)
		require.False(t, found)
	}
}
