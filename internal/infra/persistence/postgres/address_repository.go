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

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}

	addressM := fromAddressDomain(address)
	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		return errors.Wrap(err, "failed to create address")
	}

	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

func (repo *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	tx := repo.db.WithContext(ctx).Model(&model.AddressModel{}).
		Where("id = ?", address.ID).
		Updates(map[string]any{
			"line":         address.Line,
			"zip_code":     address.ZipCode,
			"city":         address.City,
			"state":        address.State,
			"neighborhood": address.Neighborhood,
		})
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to update address")
	}
	if tx.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:           data.ID,
		Line:         data.Line,
		ZipCode:      data.ZipCode,
		City:         data.City,
		State:        data.State,
		Neighborhood: data.Neighborhood,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromAddressDomain(data *entity.Address) *model.AddressModel {
	return &model.AddressModel{
		ID:           data.ID,
		Line:         data.Line,
		ZipCode:      data.ZipCode,
		City:         data.City,
		State:        data.State,
		Neighborhood: data.Neighborhood,
	}
}
