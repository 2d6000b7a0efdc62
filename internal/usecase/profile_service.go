package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/media"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultUploadWorkers = 4

type UpdateProfileInput struct {
	Kind    string
	Patch   profile.Patch
	Uploads []media.Upload
}

type ListPlayersInput struct {
	Sport         string
	CompletedOnly bool
}

type ProfileService struct {
	profiles      profile.Repository
	accounts      account.Repository
	storage       media.Storage
	logger        *logging.Logger
	uploadWorkers int
}

func NewProfileService(
	profiles profile.Repository,
	accounts account.Repository,
	storage media.Storage,
	logger *logging.Logger,
	uploadWorkers int,
) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	if uploadWorkers <= 0 {
		uploadWorkers = defaultUploadWorkers
	}

	return &ProfileService{
		profiles:      profiles,
		accounts:      accounts,
		storage:       storage,
		logger:        logger,
		uploadWorkers: uploadWorkers,
	}
}

func (s *ProfileService) GetMine(ctx context.Context, principal account.Principal, rawKind string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetMine", profileAttrs(principal, rawKind)...)
	defer span.End()

	kind, err := authorizeKind(principal, rawKind)
	if err != nil {
		return profile.Profile{}, err
	}

	p, exists, err := s.profiles.FindByID(ctx, kind, principal.ProfileID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: find profile: %v", ErrUpstreamFailure, err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: %s profile %s", ErrNotFound, kind, principal.ProfileID)
	}
	return p, nil
}

// UpdateMine stores any uploaded files, merges the patch into the stored
// profile and saves the result. Either the merged record is persisted in full
// or nothing is; files stored for a failed update are removed again.
func (s *ProfileService) UpdateMine(ctx context.Context, principal account.Principal, input UpdateProfileInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpdateMine", profileAttrs(principal, input.Kind)...)
	defer span.End()

	kind, err := authorizeKind(principal, input.Kind)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := validateUploads(kind, input.Uploads); err != nil {
		return profile.Profile{}, err
	}

	existing, exists, err := s.profiles.FindByID(ctx, kind, principal.ProfileID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: find profile: %v", ErrUpstreamFailure, err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: %s profile %s", ErrNotFound, kind, principal.ProfileID)
	}

	stored, err := s.storeUploads(ctx, input.Uploads)
	if err != nil {
		return profile.Profile{}, err
	}

	saved, err := s.mergeAndSave(ctx, kind, existing, input.Patch, stored)
	if err != nil {
		s.removeFiles(ctx, storedPaths(stored))
		return profile.Profile{}, err
	}

	// Files replaced by this update are no longer referenced.
	s.removeFiles(ctx, replacedFiles(existing, saved))
	return saved, nil
}

func (s *ProfileService) mergeAndSave(ctx context.Context, kind profile.Kind, existing profile.Profile, patch profile.Patch, stored []storedUpload) (profile.Profile, error) {
	patch.Kind = kind
	for _, item := range stored {
		if err := patch.InjectFile(item.field, item.path); err != nil {
			return profile.Profile{}, err
		}
	}

	merged, err := profile.MergeAndEvaluate(kind, &existing, patch)
	if err != nil {
		return profile.Profile{}, err
	}

	saved, err := s.profiles.Save(ctx, merged, existing.Revision())
	switch {
	case errors.Is(err, profile.ErrRevisionConflict):
		return profile.Profile{}, fmt.Errorf("%w: profile was modified concurrently, reload and retry", ErrConflict)
	case errors.Is(err, profile.ErrNotFound):
		return profile.Profile{}, fmt.Errorf("%w: %s profile %s", ErrNotFound, kind, existing.ID())
	case err != nil:
		return profile.Profile{}, fmt.Errorf("%w: save profile: %v", ErrUpstreamFailure, err)
	}
	return saved, nil
}

// DeleteMine removes the profile and cascades to the owning account.
func (s *ProfileService) DeleteMine(ctx context.Context, principal account.Principal, rawKind string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.DeleteMine", profileAttrs(principal, rawKind)...)
	defer span.End()

	kind, err := authorizeKind(principal, rawKind)
	if err != nil {
		return err
	}

	existing, exists, err := s.profiles.FindByID(ctx, kind, principal.ProfileID)
	if err != nil {
		return fmt.Errorf("%w: find profile: %v", ErrUpstreamFailure, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s profile %s", ErrNotFound, kind, principal.ProfileID)
	}

	err = s.accounts.DeleteWithProfile(ctx, principal.AccountID, kind, principal.ProfileID)
	switch {
	case errors.Is(err, account.ErrNotFound), errors.Is(err, profile.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case err != nil:
		return fmt.Errorf("%w: delete account: %v", ErrUpstreamFailure, err)
	}

	s.removeFiles(ctx, existing.FileRefs())
	return nil
}

func (s *ProfileService) ListClubs(ctx context.Context) ([]profile.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.ListClubs")
	defer span.End()

	items, err := s.profiles.ListClubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list clubs: %v", ErrUpstreamFailure, err)
	}
	return items, nil
}

func (s *ProfileService) ListPlayers(ctx context.Context, input ListPlayersInput) ([]profile.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.ListPlayers")
	defer span.End()

	sport, err := profile.ParseSport(input.Sport)
	if err != nil {
		return nil, err
	}

	items, err := s.profiles.ListPlayers(ctx, profile.PlayerFilter{Sport: sport, CompletedOnly: input.CompletedOnly})
	if err != nil {
		return nil, fmt.Errorf("%w: list players: %v", ErrUpstreamFailure, err)
	}
	return items, nil
}

type storedUpload struct {
	field string
	path  string
}

// storeUploads writes every upload in parallel. When any write fails the
// files that did succeed are removed before returning.
func (s *ProfileService) storeUploads(ctx context.Context, uploads []media.Upload) ([]storedUpload, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	if s.storage == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", ErrUpstreamFailure)
	}

	workerCount := min(s.uploadWorkers, len(uploads))
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create upload pool: %w", err)
	}
	defer workers.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		stored   = make([]storedUpload, 0, len(uploads))
		firstErr error
	)
	for _, upload := range uploads {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			path, err := s.storage.Put(ctx, upload)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: store %s: %v", ErrUpstreamFailure, upload.Field, err)
				}
				return
			}
			stored = append(stored, storedUpload{field: profile.NormalizeFileField(upload.Field), path: path})
		}); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit upload: %w", err)
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		s.removeFiles(ctx, storedPaths(stored))
		return nil, firstErr
	}
	return stored, nil
}

// removeFiles deletes files best effort. Failures are logged and never surface.
func (s *ProfileService) removeFiles(ctx context.Context, paths []string) {
	if len(paths) == 0 || s.storage == nil {
		return
	}

	p := pool.New().WithMaxGoroutines(s.uploadWorkers)
	for _, path := range paths {
		p.Go(func() {
			if err := s.storage.Delete(context.WithoutCancel(ctx), path); err != nil {
				s.logger.WarnContext(ctx, "remove stored file failed", "path", path, "error", err)
			}
		})
	}
	p.Wait()
}

func authorizeKind(principal account.Principal, rawKind string) (profile.Kind, error) {
	kind, err := profile.ParseKind(rawKind)
	if err != nil {
		return "", err
	}
	if principal.ProfileID == "" || principal.Role.Kind() != kind {
		return "", fmt.Errorf("%w: %s accounts cannot access %s profiles", ErrForbidden, principal.Role, kind)
	}
	return kind, nil
}

func validateUploads(kind profile.Kind, uploads []media.Upload) error {
	allowed := profile.FileFields(kind)
	seen := make(map[string]struct{}, len(uploads))
	for _, upload := range uploads {
		field := profile.NormalizeFileField(upload.Field)
		if !slices.Contains(allowed, field) {
			return fmt.Errorf("%w: file field %q is not accepted for %s profiles", profile.ErrInvalidPayload, upload.Field, kind)
		}
		if _, dup := seen[field]; dup {
			return fmt.Errorf("%w: file field %q sent more than once", profile.ErrInvalidPayload, field)
		}
		seen[field] = struct{}{}
		if err := media.ValidateExtension(upload.Filename); err != nil {
			return fmt.Errorf("%w: %v", profile.ErrInvalidPayload, err)
		}
	}
	return nil
}

func replacedFiles(before, after profile.Profile) []string {
	current := after.FileRefs()
	var out []string
	for _, ref := range before.FileRefs() {
		if !slices.Contains(current, ref) {
			out = append(out, ref)
		}
	}
	return out
}

func storedPaths(items []storedUpload) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.path)
	}
	return out
}
