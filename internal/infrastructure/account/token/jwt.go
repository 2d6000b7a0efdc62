package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/usecase"
)

const defaultTTL = 24 * time.Hour

type claims struct {
	Role      string `json:"role"`
	ProfileID string `json:"profile_id"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 bearer tokens carrying the account principal.
type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret, issuer string, ttl time.Duration) (*JWT, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWT{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (j *JWT) Issue(principal account.Principal) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:      string(principal.Role),
		ProfileID: principal.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.AccountID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *JWT) VerifyAccessToken(_ context.Context, raw string) (account.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return account.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return j.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return account.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
		}
		return account.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}

	role, err := account.ParseRole(c.Role)
	if err != nil {
		return account.Principal{}, fmt.Errorf("%w: invalid role claim", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(c.Subject) == "" || strings.TrimSpace(c.ProfileID) == "" {
		return account.Principal{}, fmt.Errorf("%w: incomplete token claims", usecase.ErrUnauthorized)
	}

	return account.Principal{
		AccountID: c.Subject,
		Role:      role,
		ProfileID: c.ProfileID,
	}, nil
}
