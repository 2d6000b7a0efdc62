package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	"github.com/riskibarqy/talent-scout/internal/platform/id"
)

const minPasswordLength = 6

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs bearer tokens for an authenticated principal.
type TokenIssuer interface {
	Issue(principal account.Principal) (string, time.Time, error)
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   account.Account
}

type AuthService struct {
	accounts account.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	ids      id.Generator
	now      func() time.Time
}

func NewAuthService(accounts account.Repository, hasher PasswordHasher, tokens TokenIssuer, ids id.Generator) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		ids:      ids,
		now:      time.Now,
	}
}

// Signup creates the account and its empty profile in one step and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Signup")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = account.NormalizeEmail(input.Email)

	if input.Name == "" {
		return AuthResult{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return AuthResult{}, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return AuthResult{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	role, err := account.ParseRole(input.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	accountID, err := s.ids.NewID()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate account id: %w", err)
	}
	profileID, err := s.ids.NewID()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate profile id: %w", err)
	}

	now := s.now().UTC()
	empty, err := profile.NewEmpty(role.Kind(), profileID, now)
	if err != nil {
		return AuthResult{}, fmt.Errorf("build empty profile: %w", err)
	}
	// The display name entered at signup seeds the profile name.
	switch role.Kind() {
	case profile.KindPlayer:
		empty.Player.Name = input.Name
	case profile.KindClub:
		empty.Club.Name = input.Name
	}

	acc := account.Account{
		ID:           accountID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		ProfileID:    profileID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.CreateWithProfile(ctx, acc, empty); err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return AuthResult{}, fmt.Errorf("%w: email is already registered", ErrConflict)
		}
		return AuthResult{}, fmt.Errorf("create account: %w", err)
	}

	return s.issue(acc)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email := account.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	acc, exists, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("get account by email: %w", err)
	}
	if !exists {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err := s.hasher.Compare(acc.PasswordHash, input.Password); err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return s.issue(acc)
}

func (s *AuthService) issue(acc account.Account) (AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(account.Principal{
		AccountID: acc.ID,
		Role:      acc.Role,
		ProfileID: acc.ProfileID,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	acc.PasswordHash = ""
	return AuthResult{Token: token, ExpiresAt: expiresAt, Account: acc}, nil
}
