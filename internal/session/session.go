// Package session issues and verifies the signed tokens that identify a tutor
// (or a guest viewing a tutor's data) and carries them through request contexts.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Session identifies the owner whose data a request may touch.
type Session struct {
	UserID uuid.UUID
	Guest  bool
	// CodeDigest ties a guest session to the guest code it was opened with.
	CodeDigest string
}

// Claims is the JWT payload.
type Claims struct {
	Guest      bool   `json:"guest,omitempty"`
	CodeDigest string `json:"gcd,omitempty"`
	jwt.RegisteredClaims
}

// CodeDigest fingerprints a guest code so tokens never carry it in clear.
func CodeDigest(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:16])
}

// Issue signs an HS256 token for s valid for ttl.
func Issue(secret []byte, s Session, ttl time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Guest:      s.Guest,
		CodeDigest: s.CodeDigest,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token against the wall clock and returns its session.
func Parse(secret []byte, tokenString string) (Session, error) {
	return ParseAt(secret, tokenString, time.Now())
}

// ParseAt is Parse with expiry checked against now.
func ParseAt(secret []byte, tokenString string, now time.Time) (Session, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Session{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return Session{UserID: id, Guest: claims.Guest, CodeDigest: claims.CodeDigest}, nil
}

type ctxKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
