// Package auth verifies bearer tokens issued by the sign-in flow. A token is
// accepted only if its signature is valid and a session row still holds it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"drivent/internal/domain"
)

type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret   []byte
	sessions domain.SessionRepository
}

func NewVerifier(secret string, sessions domain.SessionRepository) *Verifier {
	return &Verifier{secret: []byte(secret), sessions: sessions}
}

// Verify returns the user id carried by token. Every rejection is
// domain.ErrUnauthorized; lookup failures are returned as internal errors.
func (v *Verifier) Verify(ctx context.Context, token string) (int64, error) {
	claims, err := Parse(v.secret, token)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	sess, err := v.sessions.FindSessionByToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, domain.ErrUnauthorized
	}
	if err != nil {
		return 0, fmt.Errorf("find session: %w", err)
	}
	if sess.UserID != claims.UserID {
		return 0, domain.ErrUnauthorized
	}
	return claims.UserID, nil
}

func Parse(secret []byte, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.UserID <= 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Sign issues an HS256 token for userID. ttl <= 0 means no expiry, which is
// how the sign-in flow issues them.
func Sign(secret string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return s, nil
}

type ctxKey int

const userIDKey ctxKey = iota + 1

func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
