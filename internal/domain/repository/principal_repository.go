// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"doggywalk/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrPrincipalNotFound is returned when no principal of the requested kind matches.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrEmailTaken is returned when an email is already used by another principal of the same kind.
	ErrEmailTaken = errors.New("email already taken")
)

// PrincipalRepository persists owners and walkers. Every lookup is scoped by kind.
type PrincipalRepository interface {
	// FindByID retrieves a principal with its address preloaded.
	FindByID(ctx context.Context, kind entity.Kind, id uuid.UUID) (*entity.Principal, error)

	// FindByEmail retrieves a principal by its (normalised) email.
	FindByEmail(ctx context.Context, kind entity.Kind, email string) (*entity.Principal, error)

	// Create persists a new principal. A duplicate email yields ErrEmailTaken.
	Create(ctx context.Context, principal *entity.Principal) error

	// Update saves profile fields. A duplicate email yields ErrEmailTaken.
	Update(ctx context.Context, principal *entity.Principal) error

	// SetAddress points the principal at an address.
	SetAddress(ctx context.Context, kind entity.Kind, id, addressID uuid.UUID) error

	// SetWalkerRate stores the walker's aggregated rate; nil clears it.
	SetWalkerRate(ctx context.Context, walkerID uuid.UUID, rate *float64) error

	// SearchWalkers lists walkers whose full name contains query (case-insensitive).
	// An empty query lists every walker.
	SearchWalkers(ctx context.Context, query string) ([]*entity.Principal, error)

	// FindManyByIDs loads principals of one kind, ordered by first then last name.
	FindManyByIDs(ctx context.Context, kind entity.Kind, ids []uuid.UUID) ([]*entity.Principal, error)

	// Delete removes the principal and every dependent row: address, dogs,
	// messages, connections, appointments and their reviews.
	Delete(ctx context.Context, kind entity.Kind, id uuid.UUID) error
}
