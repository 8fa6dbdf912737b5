package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/config"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/hasher"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
)

func newTestService(pin string, ttl time.Duration) *Service {
	cfg := config.AuthConfig{
		AccessTokenTTL:  ttl,
		JWTSecret:       "test-secret",
		OperatorPINHash: hasher.Hash(pin),
	}
	return NewService(cfg, logger.InitLogger("test", logger.LevelError))
}

func TestLogin(t *testing.T) {
	svc := newTestService("4812", 12*time.Hour)
	ctx := context.Background()

	token, err := svc.Login(ctx, "4812")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token.AccessToken == "" {
		t.Fatalf("expected a signed token")
	}

	if err := svc.Verify(ctx, token.AccessToken); err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
}

func TestLogin_WrongPIN(t *testing.T) {
	svc := newTestService("4812", 12*time.Hour)

	if _, err := svc.Login(context.Background(), "0000"); !errors.Is(err, types.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := newTestService("4812", 12*time.Hour)

	if err := svc.Verify(context.Background(), "not-a-token"); !errors.Is(err, types.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := newTestService("4812", 12*time.Hour)
	verifier := newTestService("4812", 12*time.Hour)
	verifier.cfg.JWTSecret = "different-secret"

	token, err := issuer.Login(context.Background(), "4812")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := verifier.Verify(context.Background(), token.AccessToken); !errors.Is(err, types.ErrInvalidToken) {
		t.Fatalf("token signed with another secret must be rejected, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := newTestService("4812", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Login(context.Background(), "4812")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Verify(context.Background(), token.AccessToken); !errors.Is(err, types.ErrInvalidToken) {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}
