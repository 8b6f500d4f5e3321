// Package token issues and verifies the access/refresh JWT pairs.
//
// Both halves of a pair carry the same jti, so revoking it invalidates the
// pair's access token and every access token later minted from its refresh
// token: Refresh reuses the jti, and VerifyAccess checks the blacklist. The
// refresh token itself stays verifiable until it expires but can no longer
// produce a usable access token.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrUnauthorized = errors.New("invalid or expired token")

// Blacklist answers whether a jti has been revoked.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, expire time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Claims is the payload of both token kinds. Refresh distinguishes them.
type Claims struct {
	Name    string `json:"name"`
	Refresh bool   `json:"frs"`
	jwt.RegisteredClaims
}

// Pair is a freshly minted access/refresh token pair.
type Pair struct {
	Access        string
	Refresh       string
	AccessExpire  time.Time
	RefreshExpire time.Time
}

// Service mints and checks tokens. Safe for concurrent use.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	blacklist  Blacklist
}

func NewService(secret []byte, accessTTL, refreshTTL time.Duration, bl Blacklist) *Service {
	return &Service{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL, blacklist: bl}
}

// NewPair mints an access and a refresh token for the user, sharing one jti.
func (s *Service) NewPair(userID uuid.UUID, fullName string) (Pair, error) {
	jti := uuid.NewString()
	now := time.Now()

	accessExp := now.Add(s.accessTTL)
	access, err := s.mint(userID.String(), fullName, jti, accessExp, false)
	if err != nil {
		return Pair{}, err
	}
	refreshExp := now.Add(s.refreshTTL)
	refresh, err := s.mint(userID.String(), fullName, jti, refreshExp, true)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		Access:        access,
		Refresh:       refresh,
		AccessExpire:  accessExp,
		RefreshExpire: refreshExp,
	}, nil
}

// VerifyAccess parses an access token. Fails with ErrUnauthorized on a bad
// signature, expiry, a refresh token, or a blacklisted jti. The caller is
// responsible for resolving and checking the subject user.
func (s *Service) VerifyAccess(ctx context.Context, raw string) (Claims, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return Claims{}, err
	}
	if claims.Refresh {
		return Claims{}, ErrUnauthorized
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Claims{}, fmt.Errorf("blacklist check: %w", err)
	}
	if revoked {
		return Claims{}, ErrUnauthorized
	}
	return claims, nil
}

// VerifyRefresh parses a refresh token. No blacklist or user checks.
func (s *Service) VerifyRefresh(raw string) (Claims, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return Claims{}, err
	}
	if !claims.Refresh {
		return Claims{}, ErrUnauthorized
	}
	return claims, nil
}

// RefreshAccess mints a new access token from a valid refresh token,
// reusing its subject, name and jti.
func (s *Service) RefreshAccess(raw string) (string, error) {
	claims, err := s.VerifyRefresh(raw)
	if err != nil {
		return "", err
	}
	return s.mint(claims.Subject, claims.Name, claims.ID, time.Now().Add(s.accessTTL), false)
}

// Revoke blacklists a jti until expire.
func (s *Service) Revoke(ctx context.Context, jti string, expire time.Time) error {
	return s.blacklist.Revoke(ctx, jti, expire)
}

// RevokePair blacklists a jti for the longest lifetime any token of its
// pair can have. Access tokens minted later from the pair's refresh token
// reuse the jti, so they are born revoked.
func (s *Service) RevokePair(ctx context.Context, jti string) error {
	return s.blacklist.Revoke(ctx, jti, time.Now().Add(s.refreshTTL))
}

func (s *Service) mint(sub, name, jti string, expire time.Time, refresh bool) (string, error) {
	claims := Claims{
		Name:    name,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expire),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) parse(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, ErrUnauthorized
	}
	if claims.Subject == "" || claims.ID == "" {
		return Claims{}, ErrUnauthorized
	}
	return claims, nil
}
