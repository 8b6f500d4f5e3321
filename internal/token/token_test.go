package token

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type memBlacklist struct {
	mu   sync.Mutex
	jtis map[string]time.Time
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{jtis: make(map[string]time.Time)}
}

func (b *memBlacklist) Revoke(_ context.Context, jti string, expire time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = expire
	return nil
}

func (b *memBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	expire, ok := b.jtis[jti]
	return ok && time.Now().Before(expire), nil
}

func newTestService(accessTTL time.Duration) (*Service, *memBlacklist) {
	bl := newMemBlacklist()
	return NewService([]byte("secret"), accessTTL, 15*24*time.Hour, bl), bl
}

func TestNewPairAndVerify(t *testing.T) {
	svc, _ := newTestService(30 * time.Minute)
	userID := uuid.New()

	pair, err := svc.NewPair(userID, "Avery Quinn")
	if err != nil {
		t.Fatalf("NewPair() error = %v", err)
	}

	access, err := svc.VerifyAccess(context.Background(), pair.Access)
	if err != nil {
		t.Fatalf("VerifyAccess() error = %v", err)
	}
	if access.Subject != userID.String() || access.Name != "Avery Quinn" {
		t.Fatalf("unexpected access claims: %+v", access)
	}

	refresh, err := svc.VerifyRefresh(pair.Refresh)
	if err != nil {
		t.Fatalf("VerifyRefresh() error = %v", err)
	}
	if refresh.ID != access.ID {
		t.Fatalf("pair halves carry different jtis: %s vs %s", refresh.ID, access.ID)
	}
}

func TestVerifyAccessRejectsRefreshToken(t *testing.T) {
	svc, _ := newTestService(30 * time.Minute)
	pair, err := svc.NewPair(uuid.New(), "Avery Quinn")
	if err != nil {
		t.Fatalf("NewPair() error = %v", err)
	}
	if _, err := svc.VerifyAccess(context.Background(), pair.Refresh); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("VerifyAccess(refresh) error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.VerifyRefresh(pair.Access); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("VerifyRefresh(access) error = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyAccessRejectsExpired(t *testing.T) {
	svc, _ := newTestService(-time.Minute)
	pair, err := svc.NewPair(uuid.New(), "Avery Quinn")
	if err != nil {
		t.Fatalf("NewPair() error = %v", err)
	}
	if _, err := svc.VerifyAccess(context.Background(), pair.Access); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("VerifyAccess() error = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyAccessRejectsWrongSecret(t *testing.T) {
	svc, _ := newTestService(30 * time.Minute)
	pair, err := svc.NewPair(uuid.New(), "Avery Quinn")
	if err != nil {
		t.Fatalf("NewPair() error = %v", err)
	}
	other := NewService([]byte("different"), 30*time.Minute, time.Hour, newMemBlacklist())
	if _, err := other.VerifyAccess(context.Background(), pair.Access); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("VerifyAccess() error = %v, want ErrUnauthorized", err)
	}
}

func TestRevokedTokenFailsBeforeExpiry(t *testing.T) {
	svc, _ := newTestService(30 * time.Minute)
	pair, err := svc.NewPair(uuid.New(), "Avery Quinn")
	if err != nil {
		t.Fatalf("NewPair() error = %v", err)
	}
	claims, err := svc.VerifyAccess(context.Background(), pair.Access)
	if err != nil {
		t.Fatalf("VerifyAccess() before revoke error = %v", err)
	}
	if err := svc.Revoke(context.Background(), claims.ID, pair.AccessExpire); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := svc.VerifyAccess(context.Background(), pair.Access); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("VerifyAccess() after revoke error = %v, want ErrUnauthorized", err)
	}
	// refresh verification deliberately skips the blacklist
	if _, err := svc.VerifyRefresh(pair.Refresh); err != nil {
		t.Fatalf("VerifyRefresh() after revoke error = %v", err)
	}
}

func TestRefreshAccessReusesIdentity(t *testing.T) {
	svc, _ := newTestService(30 * time.Minute)
	userID := uuid.New()
	pair, err := svc.NewPair(userID, "Avery Quinn")
	if err != nil {
		t.Fatalf("NewPair() error = %v", err)
	}

	minted, err := svc.RefreshAccess(pair.Refresh)
	if err != nil {
		t.Fatalf("RefreshAccess() error = %v", err)
	}
	claims, err := svc.VerifyAccess(context.Background(), minted)
	if err != nil {
		t.Fatalf("VerifyAccess(minted) error = %v", err)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("minted subject = %s, want %s", claims.Subject, userID)
	}

	// revoking the pair's jti also kills tokens minted afterwards
	if err := svc.RevokePair(context.Background(), claims.ID); err != nil {
		t.Fatalf("RevokePair() error = %v", err)
	}
	reminted, err := svc.RefreshAccess(pair.Refresh)
	if err != nil {
		t.Fatalf("RefreshAccess() after revoke error = %v", err)
	}
	if _, err := svc.VerifyAccess(context.Background(), reminted); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("VerifyAccess(reminted) error = %v, want ErrUnauthorized", err)
	}
}

func TestRefreshAccessRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(30 * time.Minute)
	pair, err := svc.NewPair(uuid.New(), "Avery Quinn")
	if err != nil {
		t.Fatalf("NewPair() error = %v", err)
	}
	if _, err := svc.RefreshAccess(pair.Access); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("RefreshAccess(access) error = %v, want ErrUnauthorized", err)
	}
}
