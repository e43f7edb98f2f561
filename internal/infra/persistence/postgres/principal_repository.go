package postgres

import (
	"context"
	"strings"

	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/repository"
	"doggywalk/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// principalRepository stores owners and walkers in their own tables.
type principalRepository struct {
	db *gorm.DB
}

// NewPrincipalRepository is the constructor for principalRepository.
func NewPrincipalRepository(db *gorm.DB) repository.PrincipalRepository {
	return &principalRepository{db: db}
}

func (repo *principalRepository) FindByID(ctx context.Context, kind entity.Kind, id uuid.UUID) (*entity.Principal, error) {
	return repo.findOne(ctx, kind, "id = ?", id)
}

func (repo *principalRepository) FindByEmail(ctx context.Context, kind entity.Kind, email string) (*entity.Principal, error) {
	return repo.findOne(ctx, kind, "email = ?", entity.NormalizeEmail(email))
}

func (repo *principalRepository) findOne(ctx context.Context, kind entity.Kind, query string, arg any) (*entity.Principal, error) {
	db := repo.db.WithContext(ctx).Preload("Address").Where(query, arg)

	var (
		principal *entity.Principal
		err       error
	)
	switch kind {
	case entity.KindOwner:
		var ownerM model.OwnerModel
		if err = db.First(&ownerM).Error; err == nil {
			principal = toOwnerDomain(&ownerM)
		}
	case entity.KindWalker:
		var walkerM model.WalkerModel
		if err = db.First(&walkerM).Error; err == nil {
			principal = toWalkerDomain(&walkerM)
		}
	default:
		return nil, repository.ErrPrincipalNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, errors.Wrapf(err, "failed to find %s", kind)
	}

	return principal, nil
}

func (repo *principalRepository) Create(ctx context.Context, principal *entity.Principal) error {
	if principal.ID == uuid.Nil {
		principal.ID = uuid.New()
	}

	var err error
	switch principal.Kind {
	case entity.KindOwner:
		ownerM := fromOwnerDomain(principal)
		if err = repo.db.WithContext(ctx).Omit("Address").Create(ownerM).Error; err == nil {
			principal.CreatedAt, principal.UpdatedAt = ownerM.CreatedAt, ownerM.UpdatedAt
		}
	case entity.KindWalker:
		walkerM := fromWalkerDomain(principal)
		if err = repo.db.WithContext(ctx).Omit("Address").Create(walkerM).Error; err == nil {
			principal.CreatedAt, principal.UpdatedAt = walkerM.CreatedAt, walkerM.UpdatedAt
		}
	default:
		return errors.Errorf("unknown principal kind %q", principal.Kind)
	}

	if err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEmailTaken
		}

		return errors.Wrapf(err, "failed to create %s", principal.Kind)
	}

	return nil
}

func (repo *principalRepository) Update(ctx context.Context, principal *entity.Principal) error {
	fields := map[string]any{
		"first_name":    principal.FirstName,
		"last_name":     principal.LastName,
		"email":         entity.NormalizeEmail(principal.Email),
		"password_hash": principal.PasswordHash,
		"cellphone":     principal.Cellphone,
		"photo":         principal.Photo,
	}
	if principal.Kind == entity.KindWalker && principal.Walker != nil {
		fields["description"] = principal.Walker.Description
	}

	tx := repo.table(ctx, principal.Kind).Where("id = ?", principal.ID).Updates(fields)
	if tx.Error != nil {
		if isUniqueConstraintViolation(tx.Error) {
			return repository.ErrEmailTaken
		}

		return errors.Wrapf(tx.Error, "failed to update %s", principal.Kind)
	}
	if tx.RowsAffected == 0 {
		return repository.ErrPrincipalNotFound
	}

	return nil
}

func (repo *principalRepository) SetAddress(ctx context.Context, kind entity.Kind, id, addressID uuid.UUID) error {
	tx := repo.table(ctx, kind).Where("id = ?", id).Update("address_id", addressID)
	if tx.Error != nil {
		return errors.Wrapf(tx.Error, "failed to set %s address", kind)
	}
	if tx.RowsAffected == 0 {
		return repository.ErrPrincipalNotFound
	}

	return nil
}

func (repo *principalRepository) SetWalkerRate(ctx context.Context, walkerID uuid.UUID, rate *float64) error {
	tx := repo.db.WithContext(ctx).Model(&model.WalkerModel{}).Where("id = ?", walkerID).Update("rate", rate)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to set walker rate")
	}
	if tx.RowsAffected == 0 {
		return repository.ErrPrincipalNotFound
	}

	return nil
}

func (repo *principalRepository) SearchWalkers(ctx context.Context, query string) ([]*entity.Principal, error) {
	db := repo.db.WithContext(ctx).Preload("Address")
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		db = db.Where("LOWER(first_name || ' ' || last_name) LIKE ? ESCAPE '\\'", "%"+escapeLike(q)+"%")
	}

	var walkerMs []*model.WalkerModel
	if err := db.Order("first_name, last_name").Find(&walkerMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search walkers")
	}

	walkers := make([]*entity.Principal, 0, len(walkerMs))
	for _, walkerM := range walkerMs {
		walkers = append(walkers, toWalkerDomain(walkerM))
	}

	return walkers, nil
}

func (repo *principalRepository) FindManyByIDs(ctx context.Context, kind entity.Kind, ids []uuid.UUID) ([]*entity.Principal, error) {
	principals := make([]*entity.Principal, 0, len(ids))
	if len(ids) == 0 {
		return principals, nil
	}

	db := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("first_name, last_name")
	switch kind {
	case entity.KindOwner:
		var ownerMs []*model.OwnerModel
		if err := db.Find(&ownerMs).Error; err != nil {
			return nil, errors.Wrap(err, "failed to load owners")
		}
		for _, ownerM := range ownerMs {
			principals = append(principals, toOwnerDomain(ownerM))
		}
	case entity.KindWalker:
		var walkerMs []*model.WalkerModel
		if err := db.Find(&walkerMs).Error; err != nil {
			return nil, errors.Wrap(err, "failed to load walkers")
		}
		for _, walkerM := range walkerMs {
			principals = append(principals, toWalkerDomain(walkerM))
		}
	}

	return principals, nil
}

// Delete removes dependents explicitly instead of relying on ON DELETE CASCADE alone,
// so the outcome does not depend on the database enforcing foreign keys.
func (repo *principalRepository) Delete(ctx context.Context, kind entity.Kind, id uuid.UUID) error {
	principal, err := repo.FindByID(ctx, kind, id)
	if err != nil {
		return err
	}

	db := repo.db.WithContext(ctx)
	column := kind.String() + "_id"

	appointmentIDs := db.Model(&model.AppointmentModel{}).Select("id").Where(column+" = ?", id)
	steps := []struct {
		what string
		run  func() error
	}{
		{"reviews", func() error {
			return db.Where("appointment_id IN (?)", appointmentIDs).Delete(&model.ReviewModel{}).Error
		}},
		{"appointments", func() error {
			return db.Where(column+" = ?", id).Delete(&model.AppointmentModel{}).Error
		}},
		{"messages", func() error {
			return db.Where(column+" = ?", id).Delete(&model.MessageModel{}).Error
		}},
		{"connections", func() error {
			return db.Where(column+" = ?", id).Delete(&model.ConnectionModel{}).Error
		}},
		{"dogs", func() error {
			if kind != entity.KindOwner {
				return nil
			}

			return db.Where("owner_id = ?", id).Delete(&model.DogModel{}).Error
		}},
		{kind.String(), func() error {
			return db.Where("id = ?", id).Delete(modelFor(kind)).Error
		}},
		{"address", func() error {
			if principal.AddressID == nil {
				return nil
			}

			return db.Where("id = ?", *principal.AddressID).Delete(&model.AddressModel{}).Error
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return errors.Wrapf(err, "failed to delete %s of %s", step.what, kind)
		}
	}

	return nil
}

func (repo *principalRepository) table(ctx context.Context, kind entity.Kind) *gorm.DB {
	return repo.db.WithContext(ctx).Model(modelFor(kind))
}

func modelFor(kind entity.Kind) any {
	if kind == entity.KindWalker {
		return &model.WalkerModel{}
	}

	return &model.OwnerModel{}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// --- Mapper Functions ---

func toOwnerDomain(data *model.OwnerModel) *entity.Principal {
	if data == nil {
		return nil
	}

	return &entity.Principal{
		ID:           data.ID,
		Kind:         entity.KindOwner,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Cellphone:    data.Cellphone,
		Photo:        data.Photo,
		AddressID:    data.AddressID,
		Address:      toAddressDomain(data.Address),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromOwnerDomain(data *entity.Principal) *model.OwnerModel {
	return &model.OwnerModel{
		ID:           data.ID,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        entity.NormalizeEmail(data.Email),
		PasswordHash: data.PasswordHash,
		Cellphone:    data.Cellphone,
		Photo:        data.Photo,
		AddressID:    data.AddressID,
	}
}

func toWalkerDomain(data *model.WalkerModel) *entity.Principal {
	if data == nil {
		return nil
	}

	return &entity.Principal{
		ID:           data.ID,
		Kind:         entity.KindWalker,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Cellphone:    data.Cellphone,
		Photo:        data.Photo,
		AddressID:    data.AddressID,
		Address:      toAddressDomain(data.Address),
		Walker: &entity.WalkerProfile{
			Description: data.Description,
			Rate:        data.Rate,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromWalkerDomain(data *entity.Principal) *model.WalkerModel {
	walkerM := &model.WalkerModel{
		ID:           data.ID,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        entity.NormalizeEmail(data.Email),
		PasswordHash: data.PasswordHash,
		Cellphone:    data.Cellphone,
		Photo:        data.Photo,
		AddressID:    data.AddressID,
	}
	if data.Walker != nil {
		walkerM.Description = data.Walker.Description
		walkerM.Rate = data.Walker.Rate
	}

	return walkerM
}
