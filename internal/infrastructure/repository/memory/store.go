package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
)

// Store keeps accounts and profiles behind one lock so the account level
// create and cascade delete are atomic. It implements both account.Repository
// and profile.Repository.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]account.Account
	emails   map[string]string
	profiles map[profileKey]profile.Profile
	now      func() time.Time
}

type profileKey struct {
	kind profile.Kind
	id   string
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]account.Account),
		emails:   make(map[string]string),
		profiles: make(map[profileKey]profile.Profile),
		now:      time.Now,
	}
}

func (s *Store) CreateWithProfile(_ context.Context, acc account.Account, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := account.NormalizeEmail(acc.Email)
	if _, taken := s.emails[email]; taken {
		return account.ErrEmailTaken
	}
	if _, exists := s.accounts[acc.ID]; exists {
		return fmt.Errorf("account %s already exists", acc.ID)
	}
	key := profileKey{kind: p.Kind, id: p.ID()}
	if _, exists := s.profiles[key]; exists {
		return fmt.Errorf("%s profile %s already exists", p.Kind, p.ID())
	}

	acc.Email = email
	s.accounts[acc.ID] = acc
	s.emails[email] = acc.ID
	s.profiles[key] = p.Clone()
	return nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (account.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[account.NormalizeEmail(email)]
	if !ok {
		return account.Account{}, false, nil
	}
	return s.accounts[id], true, nil
}

func (s *Store) GetByID(_ context.Context, id string) (account.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	return acc, ok, nil
}

func (s *Store) DeleteWithProfile(_ context.Context, accountID string, kind profile.Kind, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return account.ErrNotFound
	}
	key := profileKey{kind: kind, id: profileID}
	if _, ok := s.profiles[key]; !ok {
		return profile.ErrNotFound
	}

	delete(s.profiles, key)
	delete(s.emails, acc.Email)
	delete(s.accounts, accountID)
	return nil
}

func (s *Store) FindByID(_ context.Context, kind profile.Kind, id string) (profile.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profileKey{kind: kind, id: id}]
	if !ok {
		return profile.Profile{}, false, nil
	}
	return p.Clone(), true, nil
}

func (s *Store) Save(_ context.Context, p profile.Profile, expectedRevision int64) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := profileKey{kind: p.Kind, id: p.ID()}
	current, ok := s.profiles[key]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	if current.Revision() != expectedRevision {
		return profile.Profile{}, fmt.Errorf("%w: stored=%d expected=%d", profile.ErrRevisionConflict, current.Revision(), expectedRevision)
	}

	next := p.Clone()
	now := s.now().UTC()
	switch next.Kind {
	case profile.KindPlayer:
		next.Player.Revision = expectedRevision + 1
		next.Player.UpdatedAt = now
	case profile.KindClub:
		next.Club.Revision = expectedRevision + 1
		next.Club.UpdatedAt = now
	}
	s.profiles[key] = next
	return next.Clone(), nil
}

func (s *Store) DeleteByID(_ context.Context, kind profile.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := profileKey{kind: kind, id: id}
	if _, ok := s.profiles[key]; !ok {
		return profile.ErrNotFound
	}
	delete(s.profiles, key)
	return nil
}

func (s *Store) ListPlayers(_ context.Context, filter profile.PlayerFilter) ([]profile.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]profile.Player, 0)
	for key, p := range s.profiles {
		if key.kind != profile.KindPlayer {
			continue
		}
		item := p.Clone().Player
		if filter.Sport != "" && item.Sport != filter.Sport {
			continue
		}
		if filter.CompletedOnly && !item.ProfileCompleted {
			continue
		}
		out = append(out, *item)
	}
	slices.SortFunc(out, func(a, b profile.Player) int {
		return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *Store) ListClubs(_ context.Context) ([]profile.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]profile.Club, 0)
	for key, p := range s.profiles {
		if key.kind != profile.KindClub {
			continue
		}
		out = append(out, *p.Clone().Club)
	}
	slices.SortFunc(out, func(a, b profile.Club) int {
		return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}
