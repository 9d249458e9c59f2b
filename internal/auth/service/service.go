// Package service implements the shared admin credential check and token issuance.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"bounce_rentals_backend/platform/apperr"
	"bounce_rentals_backend/platform/config"
)

// Token is an issued admin session token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Service verifies the admin password and issues short-lived JWTs.
type Service struct {
	cfg config.AdminAuthConfig
	now func() time.Time
}

// New creates the auth service.
func New(cfg config.AdminAuthConfig) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// Login checks the shared admin password. A bcrypt hash is preferred; the
// plain-text env comparison exists for parity with older deployments.
func (s *Service) Login(password string) (Token, error) {
	hash := s.cfg.GetAdminPasswordHash()
	plain := s.cfg.GetAdminPassword()

	if hash == "" && plain == "" {
		return Token{}, apperr.Internal("ADMIN_PASSWORD is not set on server.")
	}

	if password == "" {
		return Token{}, apperr.Unauthorized("Wrong password.")
	}

	var ok bool
	if hash != "" {
		ok = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	} else {
		ok = password == plain
	}
	if !ok {
		return Token{}, apperr.Unauthorized("Wrong password.")
	}

	return s.issueToken()
}

func (s *Service) issueToken() (Token, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.GetAdminTokenTTL())

	claims := jwt.MapClaims{
		"type": "admin",
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return Token{}, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}
