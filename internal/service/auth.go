package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/myadmincaptiva/backend/internal/config"
	"github.com/myadmincaptiva/backend/internal/model"
	"github.com/myadmincaptiva/backend/internal/ratelimit"
)

const (
	tokenIssuer   = "myadmin-captiva"
	tokenAudience = "myadmin-captiva-ui"

	adminTTL    = time.Hour
	bypassedTTL = 365 * 24 * time.Hour
)

// loginLimiter - 로그인 실패 횟수 제한 인터페이스
type loginLimiter interface {
	Check(ctx context.Context, client string) error
	RecordFailure(ctx context.Context, client string) error
	Reset(ctx context.Context, client string) error
}

type AuthService struct {
	codec         *TokenCodec
	limiter       loginLimiter
	adminUsername string
	adminPassword string
	bypassKey     string
}

func NewAuthService(codec *TokenCodec, limiter loginLimiter, cfg config.AuthConfig) *AuthService {
	if limiter == nil {
		limiter = (*ratelimit.LoginLimiter)(nil)
	}
	return &AuthService{
		codec:         codec,
		limiter:       limiter,
		adminUsername: cfg.AdminUsername,
		adminPassword: cfg.AdminPassword,
		bypassKey:     cfg.BypassKey,
	}
}

// Login checks the submitted credentials and returns a signed token with its lifetime in seconds.
// A matching bypass key upgrades the session to the bypassed role; it never replaces the password.
func (s *AuthService) Login(ctx context.Context, username, password, bypassKey, client string) (string, int64, error) {
	if username == "" || password == "" {
		return "", 0, ErrInvalidInput
	}

	if s.adminUsername == "" || s.adminPassword == "" {
		return "", 0, fmt.Errorf("%w: MYADMINCAPTIVA_USER/MYADMINCAPTIVA_PASS are required", ErrMisconfigured)
	}

	if err := s.limiter.Check(ctx, client); err != nil {
		return "", 0, limiterError(err)
	}

	matchUser := secureMatch(username, s.adminUsername)
	matchPass := secureMatch(password, s.adminPassword)
	if !matchUser || !matchPass {
		if err := s.limiter.RecordFailure(ctx, client); err != nil {
			log.Printf("Failed to record login failure: %v", err)
		}
		return "", 0, ErrUnauthorized
	}

	role, ttl := model.RoleAdmin, adminTTL
	if s.bypassKey != "" && secureMatch(bypassKey, s.bypassKey) {
		role, ttl = model.RoleBypassed, bypassedTTL
	}

	token, err := s.codec.Issue(model.Session{
		Subject:  s.adminUsername,
		Role:     role,
		Issuer:   tokenIssuer,
		Audience: tokenAudience,
	}, ttl)
	if err != nil {
		return "", 0, err
	}

	if err := s.limiter.Reset(ctx, client); err != nil {
		log.Printf("Failed to reset login limiter: %v", err)
	}

	return token, int64(ttl / time.Second), nil
}

// ParseAccessToken verifies a bearer token.
func (s *AuthService) ParseAccessToken(token string) (*model.Session, error) {
	return s.codec.Verify(token)
}

// secureMatch compares in constant time. Length is checked first; a length
// mismatch is not a match.
func secureMatch(submitted, expected string) bool {
	if len(submitted) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) == 1
}

func limiterError(err error) error {
	if errors.Is(err, ratelimit.ErrRateLimited) {
		return ErrRateLimited
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
