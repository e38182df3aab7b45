// Package token signs and verifies the compact bearer tokens that name
// session rows. The token is a capability pointing at a session, not the
// session itself.
package token

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/impactlink/engage/internal/config"
	"github.com/impactlink/engage/internal/session/domain"
)

// Claims is the decoded payload of a session bearer token.
type Claims struct {
	SessionID snowflake.ID
	UserID    snowflake.ID
	Role      domain.UserRole
	Email     string
}

type jwtClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret []byte
}

func NewCodec(cfg config.Config) *Codec {
	return &Codec{secret: []byte(cfg.SigningSecret)}
}

// Issue signs a token naming the session. The embedded expiry mirrors the
// session row's expires_at so a stale token fails fast without a lookup.
func (c *Codec) Issue(sessionID, userID snowflake.ID, role domain.UserRole, email string, expiresAt time.Time) (string, error) {
	now := time.Now().UTC()
	claims := jwtClaims{
		Role:  string(role),
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt.UTC()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse verifies the signature and structure of raw. Every failure mode,
// tampering, truncation, wrong key, expired claim, maps to
// domain.ErrInvalidToken so callers cannot build a validity oracle.
func (c *Codec) Parse(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	sessionID, err := snowflake.ParseString(claims.ID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	userID, err := snowflake.ParseString(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	role := domain.UserRole(claims.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	return &Claims{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Email:     claims.Email,
	}, nil
}
