package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "doggywalk/internal/delivery/context"
	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/policy"
	"doggywalk/internal/domain/repository"
	"doggywalk/internal/domain/service"
	"doggywalk/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// dogService implements the DogUsecase interface.
type dogService struct {
	txManager repository.TransactionManager
	catalog   service.BreedCatalog
	logger    *slog.Logger
}

// DogServiceParams holds dependencies for dogService, injected by Fx.
type DogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Catalog   service.BreedCatalog
	Logger    *slog.Logger
}

// NewDogService is the constructor for dogService.
func NewDogService(params DogServiceParams) usecase.DogUsecase {
	return &dogService{
		txManager: params.TxManager,
		catalog:   params.Catalog,
		logger:    params.Logger,
	}
}

func (srv *dogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *dogService) ListDogs(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID uuid.UUID) ([]*entity.Dog, error) {
	var dogs []*entity.Dog
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.PrincipalRepo().FindByID(ctx, entity.KindOwner, ownerID); err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.ViewOwnerDogs, policy.OwnerTarget(ownerID)); err != nil {
			return err
		}

		var err error
		dogs, err = repoFactory.DogRepo().ListByOwner(ctx, ownerID)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	return dogs, nil
}

// AddDog authorizes first, then consults the breed catalog outside any transaction,
// then stores the dog.
func (srv *dogService) AddDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID uuid.UUID, input *usecase.DogInput) (*entity.Dog, error) {
	dog, err := newDog(ownerID, input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.PrincipalRepo().FindByID(ctx, entity.KindOwner, ownerID); err != nil {
			return translateRepoError(err)
		}

		return policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.EditOwner, policy.OwnerTarget(ownerID))
	})
	if err != nil {
		return nil, err
	}

	if dog.Description == "" && !strings.EqualFold(dog.Breed, entity.OtherBreed) {
		dog.Description = srv.temperament(ctx, dog.Breed)
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return translateRepoError(repoFactory.DogRepo().Create(ctx, dog))
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Dog added", slog.Any("ownerID", ownerID), slog.Any("dogID", dog.ID))

	return dog, nil
}

func (srv *dogService) temperament(ctx context.Context, breed string) string {
	temperament, found, err := srv.catalog.LookupTemperament(ctx, breed)
	if err != nil {
		srv.log(ctx).Warn("Breed catalog unavailable, leaving description empty", slog.String("breed", breed), slog.Any("error", err))

		return ""
	}
	if !found {
		return ""
	}

	return temperament
}

func (srv *dogService) GetDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID) (*entity.Dog, error) {
	var dog *entity.Dog
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		if dog, err = repoFactory.DogRepo().FindByID(ctx, dogID); err != nil {
			return translateRepoError(err)
		}

		return policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.ViewDog, policy.DogTarget(dog))
	})
	if err != nil {
		return nil, err
	}

	return dog, nil
}

func (srv *dogService) EditDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID, input *usecase.DogInput) (*entity.Dog, error) {
	var dog *entity.Dog
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		existing, err := repoFactory.DogRepo().FindByID(ctx, dogID)
		if err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.EditDog, policy.DogTarget(existing)); err != nil {
			return err
		}

		if dog, err = newDog(existing.OwnerID, input); err != nil {
			return err
		}
		dog.ID = existing.ID
		dog.CreatedAt = existing.CreatedAt

		return translateRepoError(repoFactory.DogRepo().Update(ctx, dog))
	})
	if err != nil {
		return nil, err
	}

	return dog, nil
}

func (srv *dogService) DeleteDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dog, err := repoFactory.DogRepo().FindByID(ctx, dogID)
		if err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.EditDog, policy.DogTarget(dog)); err != nil {
			return err
		}

		return translateRepoError(repoFactory.DogRepo().Delete(ctx, dogID))
	})
}

func (srv *dogService) Breeds(ctx context.Context) []string {
	names, err := srv.catalog.ListBreeds(ctx)
	if err != nil {
		srv.log(ctx).Warn("Breed catalog unavailable, offering only the fallback breed", slog.Any("error", err))
		names = nil
	}

	breeds := make([]string, 0, len(names)+1)
	for _, name := range names {
		if !strings.EqualFold(name, entity.OtherBreed) {
			breeds = append(breeds, name)
		}
	}

	return append(breeds, entity.OtherBreed)
}

func newDog(ownerID uuid.UUID, input *usecase.DogInput) (*entity.Dog, error) {
	name := strings.TrimSpace(input.Name)
	breed := strings.TrimSpace(input.Breed)
	switch {
	case name == "":
		return nil, invalid("name is required")
	case breed == "":
		return nil, invalid("breed is required")
	case input.Weight <= 0:
		return nil, invalid("weight must be greater than zero")
	case input.Age <= 0:
		return nil, invalid("age must be greater than zero")
	}

	photo := strings.TrimSpace(input.Photo)
	if photo == "" {
		photo = entity.DefaultPhoto
	}

	return &entity.Dog{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Breed:       breed,
		Weight:      input.Weight,
		Age:         input.Age,
		Color:       strings.TrimSpace(input.Color),
		Description: strings.TrimSpace(input.Description),
		Photo:       photo,
	}, nil
}
