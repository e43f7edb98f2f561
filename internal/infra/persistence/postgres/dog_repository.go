package postgres

import (
	"context"

	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/repository"
	"doggywalk/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type dogRepository struct {
	db *gorm.DB
}

// NewDogRepository is the constructor for dogRepository.
func NewDogRepository(db *gorm.DB) repository.DogRepository {
	return &dogRepository{db: db}
}

func (repo *dogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dog, error) {
	var dogM model.DogModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&dogM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDogNotFound
		}

		return nil, errors.Wrap(err, "failed to find dog by id")
	}

	return toDogDomain(&dogM), nil
}

func (repo *dogRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Dog, error) {
	var dogMs []*model.DogModel
	if err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name").Find(&dogMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list dogs")
	}

	dogs := make([]*entity.Dog, 0, len(dogMs))
	for _, dogM := range dogMs {
		dogs = append(dogs, toDogDomain(dogM))
	}

	return dogs, nil
}

func (repo *dogRepository) Create(ctx context.Context, dog *entity.Dog) error {
	if dog.ID == uuid.Nil {
		dog.ID = uuid.New()
	}

	dogM := fromDogDomain(dog)
	if err := repo.db.WithContext(ctx).Omit("Owner").Create(dogM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPrincipalNotFound
		}

		return errors.Wrap(err, "failed to create dog")
	}

	dog.CreatedAt = dogM.CreatedAt
	dog.UpdatedAt = dogM.UpdatedAt

	return nil
}

func (repo *dogRepository) Update(ctx context.Context, dog *entity.Dog) error {
	tx := repo.db.WithContext(ctx).Model(&model.DogModel{}).
		Where("id = ?", dog.ID).
		Updates(map[string]any{
			"name":        dog.Name,
			"breed":       dog.Breed,
			"weight":      dog.Weight,
			"age":         dog.Age,
			"color":       dog.Color,
			"description": dog.Description,
			"photo":       dog.Photo,
		})
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to update dog")
	}
	if tx.RowsAffected == 0 {
		return repository.ErrDogNotFound
	}

	return nil
}

func (repo *dogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DogModel{})
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to delete dog")
	}
	if tx.RowsAffected == 0 {
		return repository.ErrDogNotFound
	}

	return nil
}

func toDogDomain(data *model.DogModel) *entity.Dog {
	return &entity.Dog{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Breed:       data.Breed,
		Weight:      data.Weight,
		Age:         data.Age,
		Color:       data.Color,
		Description: data.Description,
		Photo:       data.Photo,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromDogDomain(data *entity.Dog) *model.DogModel {
	return &model.DogModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Breed:       data.Breed,
		Weight:      data.Weight,
		Age:         data.Age,
		Color:       data.Color,
		Description: data.Description,
		Photo:       data.Photo,
	}
}
