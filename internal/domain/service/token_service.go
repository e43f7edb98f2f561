package service

import (
	"context"
	"time"

	"doggywalk/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Claims defines the custom claims for session tokens.
type Claims struct {
	Kind entity.Kind `json:"kind"`
	jwt.RegisteredClaims
}

// Principal returns the session payload encoded in the claims.
func (c *Claims) Principal() (*entity.AuthenticatedPrincipal, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token subject")
	}
	if !c.Kind.IsValid() {
		return nil, errors.Errorf("invalid principal kind %q", c.Kind)
	}

	return &entity.AuthenticatedPrincipal{ID: id, Kind: c.Kind}, nil
}

// IssuedToken is a signed session token and its identity.
type IssuedToken struct {
	Token     string
	ID        string // jti, used for revocation
	ExpiresAt time.Time
}

// TokenService issues and validates session tokens.
type TokenService interface {
	// Issue signs a token for the principal.
	Issue(principal *entity.AuthenticatedPrincipal) (*IssuedToken, error)

	// Validate parses a token and checks its signature, expiry and claims.
	Validate(tokenString string) (*Claims, error)
}

// TokenRevoker remembers logged-out tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
