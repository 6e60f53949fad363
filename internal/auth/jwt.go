package auth

import (
	"fmt"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user profile and session reference inside the service JWT.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Sid     string `json:"sid"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies the service's own HS256 tokens.
//
// These are separate from Google's tokens: the client only ever holds a
// WatchLog JWT, Google credentials stay in the server-side session.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. A non-positive ttlDays defaults to 7 days.
func NewIssuer(secret string, ttlDays int) *Issuer {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue generates a signed JWT for the given profile, referencing sessionID
// through the sid claim.
func (i *Issuer) Issue(profile *models.UserProfile, sessionID string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
		Sid:     sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string, returning its claims.
//
// Rejects non-HMAC signing methods, bad signatures, and expired tokens.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" || claims.Email == "" {
		return nil, shared.ErrInvalidToken
	}

	return claims, nil
}
