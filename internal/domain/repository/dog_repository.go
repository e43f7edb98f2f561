package repository

import (
	"context"
	"errors"

	"doggywalk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDogNotFound is returned when a dog does not exist.
var ErrDogNotFound = errors.New("dog not found")

// DogRepository persists dogs.
type DogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dog, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Dog, error)
	Create(ctx context.Context, dog *entity.Dog) error
	Update(ctx context.Context, dog *entity.Dog) error
	Delete(ctx context.Context, id uuid.UUID) error
}
