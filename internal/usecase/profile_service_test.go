package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/media"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	"github.com/riskibarqy/talent-scout/internal/infrastructure/repository/memory"
	mediamock "github.com/riskibarqy/talent-scout/internal/mocks/domain/media"
	profilemock "github.com/riskibarqy/talent-scout/internal/mocks/domain/profile"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func strPtr(v string) *string { return &v }

func seedAccount(t *testing.T, store *memory.Store, role account.Role) account.Principal {
	t.Helper()

	principal := account.Principal{AccountID: "acc-" + string(role), Role: role, ProfileID: "pro-" + string(role)}
	p, err := profile.NewEmpty(role.Kind(), principal.ProfileID, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("new empty profile: %v", err)
	}
	acc := account.Account{ID: principal.AccountID, Email: string(role) + "@example.com", Role: role, ProfileID: principal.ProfileID}
	if err := store.CreateWithProfile(context.Background(), acc, p); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return principal
}

func newProfileServiceForTest(store *memory.Store, storage media.Storage) *ProfileService {
	return NewProfileService(store, store, storage, logging.NewNop(), 2)
}

func TestProfileService_UpdateMineMergesAndCompletes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	principal := seedAccount(t, store, account.RolePlayer)
	svc := newProfileServiceForTest(store, nil)

	first, err := svc.UpdateMine(ctx, principal, UpdateProfileInput{
		Kind: "player",
		Patch: profile.Patch{Player: &profile.PlayerPatch{
			Name:   strPtr("Alex"),
			Sport:  strPtr("football"),
			Mobile: strPtr("+44 7700 900123"),
		}},
	})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if first.Completed() {
		t.Fatalf("profile without age and metrics must be incomplete")
	}

	age := 22
	second, err := svc.UpdateMine(ctx, principal, UpdateProfileInput{
		Kind: "player",
		Patch: profile.Patch{Player: &profile.PlayerPatch{
			Age:             &age,
			PerformanceData: strPtr(`[{"metric":"Speed","value":30,"unit":"km/h"}]`),
		}},
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if !second.Completed() || second.Player.Name != "Alex" || second.Player.Sport != profile.SportFootball {
		t.Fatalf("expected complete profile keeping stored fields, got %+v", second.Player)
	}
	if second.Revision() != 2 {
		t.Fatalf("expected revision 2, got %d", second.Revision())
	}

	stored, err := svc.GetMine(ctx, principal, "player")
	if err != nil {
		t.Fatalf("get mine: %v", err)
	}
	if !reflect.DeepEqual(stored, second) {
		t.Fatalf("stored record differs from returned record")
	}
}

func TestProfileService_UpdateMineInvalidPayloadLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	principal := seedAccount(t, store, account.RolePlayer)
	before, _, _ := store.FindByID(ctx, profile.KindPlayer, principal.ProfileID)

	storage := mediamock.NewStorage(t)
	storage.
		On("Put", mock.Anything, mock.MatchedBy(func(u media.Upload) bool { return u.Field == "achievementImage" })).
		Return("/uploads/achievementsimage-1-trophy.png", nil).
		Once()
	storage.
		On("Delete", mock.Anything, "/uploads/achievementsimage-1-trophy.png").
		Return(nil).
		Once()

	svc := newProfileServiceForTest(store, storage)
	_, err := svc.UpdateMine(ctx, principal, UpdateProfileInput{
		Kind:    "player",
		Patch:   profile.Patch{Player: &profile.PlayerPatch{Name: strPtr("Alex"), PerformanceData: strPtr("{broken")}},
		Uploads: []media.Upload{{Field: "achievementImage", Filename: "trophy.png", Body: strings.NewReader("png")}},
	})
	if !errors.Is(err, profile.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}

	after, _, _ := store.FindByID(ctx, profile.KindPlayer, principal.ProfileID)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("store changed after failed update")
	}
}

func TestProfileService_UpdateMineInjectsUploadedFiles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	principal := seedAccount(t, store, account.RoleClub)

	storage := mediamock.NewStorage(t)
	storage.
		On("Put", mock.Anything, mock.MatchedBy(func(u media.Upload) bool { return u.Field == "logo" })).
		Return("/uploads/logo-1-crest.png", nil).
		Once()
	storage.
		On("Put", mock.Anything, mock.MatchedBy(func(u media.Upload) bool { return u.Field == "affiliation" })).
		Return("/uploads/affiliation-1-cert.pdf", nil).
		Once()

	svc := newProfileServiceForTest(store, storage)
	got, err := svc.UpdateMine(ctx, principal, UpdateProfileInput{
		Kind: "club",
		Patch: profile.Patch{Club: &profile.ClubPatch{
			Name: strPtr("Riverside FC"),
			Logo: strPtr("client-supplied-value"),
		}},
		Uploads: []media.Upload{
			{Field: "logo", Filename: "crest.png"},
			{Field: "affiliation", Filename: "cert.pdf"},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Club.Logo != "/uploads/logo-1-crest.png" || got.Club.Affiliation != "/uploads/affiliation-1-cert.pdf" {
		t.Fatalf("uploaded paths not injected: %+v", got.Club)
	}
}

func TestProfileService_UpdateMineRejectsBadUploadsBeforeStoring(t *testing.T) {
	store := memory.NewStore()
	principal := seedAccount(t, store, account.RolePlayer)
	storage := mediamock.NewStorage(t)
	svc := newProfileServiceForTest(store, storage)

	tests := []struct {
		name   string
		upload media.Upload
	}{
		{name: "club field on player", upload: media.Upload{Field: "logo", Filename: "crest.png"}},
		{name: "unsupported extension", upload: media.Upload{Field: "achievementsImage", Filename: "clip.mp4"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateMine(context.Background(), principal, UpdateProfileInput{Kind: "player", Uploads: []media.Upload{tc.upload}})
			if !errors.Is(err, profile.ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestProfileService_UpdateMineStorageFailureIsUpstream(t *testing.T) {
	store := memory.NewStore()
	principal := seedAccount(t, store, account.RolePlayer)

	storage := mediamock.NewStorage(t)
	storage.On("Put", mock.Anything, mock.Anything).Return("", errors.New("disk full")).Once()

	svc := newProfileServiceForTest(store, storage)
	_, err := svc.UpdateMine(context.Background(), principal, UpdateProfileInput{
		Kind:    "player",
		Uploads: []media.Upload{{Field: "achievementsImage", Filename: "trophy.jpg"}},
	})
	if !errors.Is(err, ErrUpstreamFailure) {
		t.Fatalf("expected ErrUpstreamFailure, got %v", err)
	}
}

func TestProfileService_KindMustMatchRole(t *testing.T) {
	store := memory.NewStore()
	principal := seedAccount(t, store, account.RolePlayer)
	svc := newProfileServiceForTest(store, nil)

	if _, err := svc.GetMine(context.Background(), principal, "club"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetMine(context.Background(), principal, "coach"); !errors.Is(err, profile.ErrInvalidEnum) {
		t.Fatalf("expected ErrInvalidEnum, got %v", err)
	}
}

func TestProfileService_UpdateMineRevisionConflictUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := profilemock.NewRepository(t)
	principal := account.Principal{AccountID: "acc-1", Role: account.RolePlayer, ProfileID: "pro-1"}
	existing := profile.Profile{Kind: profile.KindPlayer, Player: &profile.Player{ID: "pro-1", Revision: 3}}

	repo.
		On("FindByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), profile.KindPlayer, "pro-1").
		Return(existing, true, nil).
		Once()
	repo.
		On("Save", mock.Anything, mock.MatchedBy(func(p profile.Profile) bool { return p.Player.Name == "Alex" }), int64(3)).
		Return(profile.Profile{}, profile.ErrRevisionConflict).
		Once()

	svc := NewProfileService(repo, nil, nil, logging.NewNop(), 1)
	_, err := svc.UpdateMine(ctx, principal, UpdateProfileInput{
		Kind:  "player",
		Patch: profile.Patch{Player: &profile.PlayerPatch{Name: strPtr("Alex")}},
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestProfileService_UpdateMineMissingProfile(t *testing.T) {
	store := memory.NewStore()
	svc := newProfileServiceForTest(store, nil)
	principal := account.Principal{AccountID: "acc-x", Role: account.RoleClub, ProfileID: "missing"}

	_, err := svc.UpdateMine(context.Background(), principal, UpdateProfileInput{Kind: "club"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileService_DeleteMineCascadesAndRemovesFiles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	principal := seedAccount(t, store, account.RoleClub)

	stored, _, _ := store.FindByID(ctx, profile.KindClub, principal.ProfileID)
	stored.Club.Logo = "/uploads/logo-1-crest.png"
	if _, err := store.Save(ctx, stored, 0); err != nil {
		t.Fatalf("seed logo: %v", err)
	}

	storage := mediamock.NewStorage(t)
	storage.On("Delete", mock.Anything, "/uploads/logo-1-crest.png").Return(errors.New("already gone")).Once()

	svc := newProfileServiceForTest(store, storage)
	if err := svc.DeleteMine(ctx, principal, "club"); err != nil {
		t.Fatalf("delete mine: %v", err)
	}

	if _, exists, _ := store.GetByID(ctx, principal.AccountID); exists {
		t.Fatalf("account should be deleted with the profile")
	}
	if _, err := svc.GetMine(ctx, principal, "club"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.DeleteMine(ctx, principal, "club"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestProfileService_ListPlayers(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, account.RolePlayer)
	svc := newProfileServiceForTest(store, nil)

	items, err := svc.ListPlayers(context.Background(), ListPlayersInput{})
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected players: %v %v", items, err)
	}
	if _, err := svc.ListPlayers(context.Background(), ListPlayersInput{Sport: "Tennis"}); !errors.Is(err, profile.ErrInvalidEnum) {
		t.Fatalf("expected ErrInvalidEnum, got %v", err)
	}
}
