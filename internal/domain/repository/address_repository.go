package repository

import (
	"context"
	"errors"

	"doggywalk/internal/domain/entity"
)

// ErrAddressNotFound is returned when an address does not exist.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository persists addresses.
type AddressRepository interface {
	// Create persists a new address.
	Create(ctx context.Context, address *entity.Address) error

	// Update overwrites an existing address in place.
	Update(ctx context.Context, address *entity.Address) error
}
