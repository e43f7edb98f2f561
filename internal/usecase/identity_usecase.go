// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to create an owner or walker account.
type SignupInput struct {
	Kind      entity.Kind
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginInput defines the credentials of a principal of a given kind.
type LoginInput struct {
	Kind     entity.Kind
	Email    string
	Password string
}

// EditProfileInput carries the profile fields to change; nil fields are left
// untouched. CurrentPassword must match for any change to be applied.
type EditProfileInput struct {
	FirstName       *string
	LastName        *string
	Email           *string
	Cellphone       *string
	Photo           *string
	Description     *string // walkers only
	NewPassword     *string
	CurrentPassword string
}

// AddressInput is the full address of a principal.
type AddressInput struct {
	Line         string
	ZipCode      int
	City         string
	State        string
	Neighborhood string
}

// --- Output DTOs ---

// SessionOutput is returned by signup and login.
type SessionOutput struct {
	Principal *entity.Principal
	Token     *service.IssuedToken
}

// IdentityUsecase manages accounts, sessions and profiles of both principal kinds.
type IdentityUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SessionOutput, error)
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)
	// Logout revokes the session token described by claims.
	Logout(ctx context.Context, claims *service.Claims) error
	// Authenticate validates a bearer token and rejects revoked ones.
	Authenticate(ctx context.Context, token string) (*entity.AuthenticatedPrincipal, *service.Claims, error)

	GetProfile(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) (*entity.Principal, error)
	EditProfile(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, input *EditProfileInput) (*entity.Principal, error)
	// UpdateAddress creates the principal's address on first use and updates it in place afterwards.
	UpdateAddress(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, input *AddressInput) (*entity.Address, error)
	DeletePrincipal(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) error
	SearchWalkers(ctx context.Context, query string) ([]*entity.Principal, error)
}
