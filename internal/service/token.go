package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/myadmincaptiva/backend/internal/model"
)

// sessionClaims - 토큰 페이로드 (registered claims + role)
type sessionClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies compact HS256 session tokens bound to one secret.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), now: time.Now}
}

// Issue signs the session. IssuedAt is always now; ExpiresAt is now+ttl unless
// the session already carries one.
func (c *TokenCodec) Issue(session model.Session, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("%w: AUTH_JWT_SECRET is required", ErrMisconfigured)
	}

	now := c.now()
	expiresAt := session.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(ttl)
	}

	claims := sessionClaims{
		Role: session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Subject,
			Issuer:    session.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if session.Audience != "" {
		claims.Audience = jwt.ClaimStrings{session.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify returns the session carried by token. Every failure is ErrUnauthorized.
func (c *TokenCodec) Verify(tokenStr string) (*model.Session, error) {
	if len(c.secret) == 0 || !hasThreeSegments(tokenStr) {
		return nil, ErrUnauthorized
	}

	claims := &sessionClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	token, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	session := &model.Session{
		Subject: claims.Subject,
		Role:    claims.Role,
		Issuer:  claims.Issuer,
	}
	if len(claims.Audience) > 0 {
		session.Audience = claims.Audience[0]
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func hasThreeSegments(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}
