package usecase

import (
	"context"

	"doggywalk/internal/domain/entity"

	"github.com/google/uuid"
)

// DogInput holds the editable fields of a dog.
type DogInput struct {
	Name        string
	Breed       string
	Weight      int
	Age         int
	Color       string
	Description string
	Photo       string
}

// DogUsecase manages an owner's dogs.
type DogUsecase interface {
	ListDogs(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID uuid.UUID) ([]*entity.Dog, error)
	// AddDog fills an empty description from the breed temperament when the catalog knows the breed.
	AddDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID uuid.UUID, input *DogInput) (*entity.Dog, error)
	GetDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID) (*entity.Dog, error)
	EditDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID, input *DogInput) (*entity.Dog, error)
	DeleteDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID) error
	// Breeds lists catalog breeds followed by "Other"; catalog failures yield just "Other".
	Breeds(ctx context.Context) []string
}
