package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"bounce_rentals_backend/platform/apperr"
)

type fakeAuthConfig struct {
	hash     string
	plain    string
	secret   string
	tokenTTL time.Duration
}

func (c fakeAuthConfig) GetAdminPasswordHash() string    { return c.hash }
func (c fakeAuthConfig) GetAdminPassword() string        { return c.plain }
func (c fakeAuthConfig) GetAdminTokenTTL() time.Duration { return c.tokenTTL }
func (c fakeAuthConfig) GetJWTAccessSecret() string      { return c.secret }

func TestLogin_NoCredentialConfigured(t *testing.T) {
	svc := New(fakeAuthConfig{secret: "s", tokenTTL: time.Hour})

	_, err := svc.Login("whatever")
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestLogin_PlainPassword(t *testing.T) {
	svc := New(fakeAuthConfig{plain: "hunter2", secret: "s", tokenTTL: time.Hour})

	if _, err := svc.Login("hunter2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Login("wrong"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(""); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("empty password: expected unauthorized, got %v", err)
	}
}

func TestLogin_BcryptHashPreferred(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The plain value is set to something else; the hash must win.
	svc := New(fakeAuthConfig{hash: string(hash), plain: "decoy", secret: "s", tokenTTL: time.Hour})

	if _, err := svc.Login("hunter2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Login("decoy"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for plain decoy, got %v", err)
	}
}

func TestLogin_TokenClaims(t *testing.T) {
	svc := New(fakeAuthConfig{plain: "hunter2", secret: "topsecret", tokenTTL: 2 * time.Hour})
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Login("hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !token.ExpiresAt.Equal(issuedAt.Add(2 * time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", issuedAt.Add(2*time.Hour), token.ExpiresAt)
	}

	parsed, err := jwt.Parse(token.Value, func(*jwt.Token) (interface{}, error) {
		return []byte("topsecret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issuedAt }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("expected map claims, got %T", parsed.Claims)
	}
	if claims["type"] != "admin" {
		t.Fatalf("expected admin token type, got %v", claims["type"])
	}
}
