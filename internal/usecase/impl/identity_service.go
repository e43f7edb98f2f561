package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"doggywalk/config"
	deliverycontext "doggywalk/internal/delivery/context"
	"doggywalk/internal/domain/entity"
	domainerrors "doggywalk/internal/domain/errors"
	"doggywalk/internal/domain/policy"
	"doggywalk/internal/domain/repository"
	"doggywalk/internal/domain/service"
	"doggywalk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultMinPasswordLength = 6
	maxDescriptionLength     = 450
	// bcrypt refuses longer inputs.
	maxPasswordBytes = 72
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager         repository.TransactionManager
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	revoker           service.TokenRevoker
	minPasswordLength int
	logger            *slog.Logger

	// decoyHash is compared against on unknown emails so both login failures cost
	// one hash comparison.
	decoyOnce sync.Once
	decoyHash string
}

// IdentityServiceParams holds dependencies for identityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Revoker      service.TokenRevoker
	Config       *config.Config
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	minPasswordLength := defaultMinPasswordLength
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	return &identityService{
		txManager:         params.TxManager,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		revoker:           params.Revoker,
		minPasswordLength: minPasswordLength,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates the account and opens a session for it. Hashing happens before the
// transaction so a failure there persists nothing.
func (srv *identityService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SessionOutput, error) {
	if err := requireKind(input.Kind); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, invalid("first and last name are required")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, invalid("a valid email is required")
	}
	if err := srv.checkPassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("kind", input.Kind), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	principal := entity.NewPrincipal(input.Kind, input.FirstName, input.LastName, input.Email)
	principal.PasswordHash = hash

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return translateRepoError(repoFactory.PrincipalRepo().Create(ctx, principal))
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.Any("kind", input.Kind), slog.String("email", principal.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.log(ctx).Info("Principal signed up", slog.Any("kind", principal.Kind), slog.Any("id", principal.ID))

	return srv.openSession(principal)
}

// Login checks the credentials of a principal of the requested kind. Unknown email
// and wrong password are indistinguishable to the caller.
func (srv *identityService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	if err := requireKind(input.Kind); err != nil {
		return nil, err
	}

	var principal *entity.Principal
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		principal, err = repoFactory.PrincipalRepo().FindByEmail(ctx, input.Kind, input.Email)

		return err
	})
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		srv.log(ctx).Info("Login for unknown email", slog.Any("kind", input.Kind))
		srv.hasher.Check(input.Password, srv.decoy())

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load principal")
	}

	if !srv.hasher.Check(input.Password, principal.PasswordHash) {
		srv.log(ctx).Info("Login with wrong password", slog.Any("kind", input.Kind), slog.Any("id", principal.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.openSession(principal)
}

func (srv *identityService) openSession(principal *entity.Principal) (*usecase.SessionOutput, error) {
	token, err := srv.tokenService.Issue(principal.Actor())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.SessionOutput{Principal: principal, Token: token}, nil
}

func (srv *identityService) Logout(ctx context.Context, claims *service.Claims) error {
	if claims == nil || claims.ID == "" {
		return domainerrors.ErrUnauthenticated
	}

	expiresAt := claims.ExpiresAt
	if expiresAt == nil {
		return domainerrors.ErrTokenInvalid.WrapMessage("token has no expiry")
	}

	if err := srv.revoker.Revoke(ctx, claims.ID, expiresAt.Time); err != nil {
		srv.log(ctx).Error("Failed to revoke token", slog.String("tokenID", claims.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke token")
	}

	return nil
}

func (srv *identityService) Authenticate(ctx context.Context, token string) (*entity.AuthenticatedPrincipal, *service.Claims, error) {
	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := srv.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return nil, nil, domainerrors.ErrTokenInvalid.WrapMessage("token revoked")
	}

	principal, err := claims.Principal()
	if err != nil {
		return nil, nil, domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
	}

	return principal, claims, nil
}

func (srv *identityService) GetProfile(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) (*entity.Principal, error) {
	if err := requireKind(kind); err != nil {
		return nil, err
	}

	var principal *entity.Principal
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		principal, err = repoFactory.PrincipalRepo().FindByID(ctx, kind, id)
		if err != nil {
			return translateRepoError(err)
		}

		return policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, viewAction(kind), profileTarget(kind, id))
	})
	if err != nil {
		return nil, err
	}

	return principal, nil
}

// EditProfile requires the current password even for changes that do not touch it.
func (srv *identityService) EditProfile(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, input *usecase.EditProfileInput) (*entity.Principal, error) {
	if err := requireKind(kind); err != nil {
		return nil, err
	}
	if input.NewPassword != nil {
		if err := srv.checkPassword(*input.NewPassword); err != nil {
			return nil, err
		}
	}
	if input.Description != nil && utf8.RuneCountInString(*input.Description) > maxDescriptionLength {
		return nil, invalid("description must be at most 450 characters")
	}

	var principal *entity.Principal
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		principalRepo := repoFactory.PrincipalRepo()

		var err error
		principal, err = principalRepo.FindByID(ctx, kind, id)
		if err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, editAction(kind), profileTarget(kind, id)); err != nil {
			return err
		}
		if !srv.hasher.Check(input.CurrentPassword, principal.PasswordHash) {
			return domainerrors.ErrIncorrectCredential
		}

		if err := srv.applyProfileChanges(principal, input); err != nil {
			return err
		}

		return translateRepoError(principalRepo.Update(ctx, principal))
	})
	if err != nil {
		srv.log(ctx).Info("Profile edit rejected", slog.Any("kind", kind), slog.Any("id", id), slog.Any("error", err))

		return nil, err
	}

	return principal, nil
}

func (srv *identityService) applyProfileChanges(principal *entity.Principal, input *usecase.EditProfileInput) error {
	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			return invalid("first name cannot be empty")
		}
		principal.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			return invalid("last name cannot be empty")
		}
		principal.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		if !strings.Contains(*input.Email, "@") {
			return invalid("a valid email is required")
		}
		principal.Email = entity.NormalizeEmail(*input.Email)
	}
	if input.Cellphone != nil {
		principal.Cellphone = strings.TrimSpace(*input.Cellphone)
	}
	if input.Photo != nil {
		principal.Photo = strings.TrimSpace(*input.Photo)
		if principal.Photo == "" {
			principal.Photo = entity.DefaultPhoto
		}
	}
	if input.Description != nil && principal.Walker != nil {
		principal.Walker.Description = strings.TrimSpace(*input.Description)
	}
	if input.NewPassword != nil {
		hash, err := srv.hasher.Hash(*input.NewPassword)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		principal.PasswordHash = hash
	}

	return nil
}

func (srv *identityService) UpdateAddress(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	if err := requireKind(kind); err != nil {
		return nil, err
	}
	if input.ZipCode <= 0 || strings.TrimSpace(input.City) == "" || strings.TrimSpace(input.State) == "" || strings.TrimSpace(input.Neighborhood) == "" {
		return nil, invalid("zip code, city, state and neighborhood are required")
	}

	address := &entity.Address{
		Line:         strings.TrimSpace(input.Line),
		ZipCode:      input.ZipCode,
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		Neighborhood: strings.TrimSpace(input.Neighborhood),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		principal, err := repoFactory.PrincipalRepo().FindByID(ctx, kind, id)
		if err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, editAction(kind), profileTarget(kind, id)); err != nil {
			return err
		}

		if principal.AddressID != nil {
			address.ID = *principal.AddressID

			return translateRepoError(repoFactory.AddressRepo().Update(ctx, address))
		}

		if err := repoFactory.AddressRepo().Create(ctx, address); err != nil {
			return translateRepoError(err)
		}

		return translateRepoError(repoFactory.PrincipalRepo().SetAddress(ctx, kind, id, address.ID))
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (srv *identityService) DeletePrincipal(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) error {
	if err := requireKind(kind); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.PrincipalRepo().FindByID(ctx, kind, id); err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, editAction(kind), profileTarget(kind, id)); err != nil {
			return err
		}

		return translateRepoError(repoFactory.PrincipalRepo().Delete(ctx, kind, id))
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Principal deleted", slog.Any("kind", kind), slog.Any("id", id))

	return nil
}

func (srv *identityService) SearchWalkers(ctx context.Context, query string) ([]*entity.Principal, error) {
	var walkers []*entity.Principal
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		walkers, err = repoFactory.PrincipalRepo().SearchWalkers(ctx, query)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search walkers")
	}

	return walkers, nil
}

func (srv *identityService) checkPassword(password string) error {
	if utf8.RuneCountInString(password) < srv.minPasswordLength {
		return invalid("password is too short")
	}
	if len(password) > maxPasswordBytes {
		return invalid("password must be at most 72 bytes")
	}

	return nil
}

// decoy hashes a random value once, at the configured cost.
func (srv *identityService) decoy() string {
	srv.decoyOnce.Do(func() {
		hash, err := srv.hasher.Hash(uuid.NewString())
		if err != nil {
			srv.logger.Warn("Failed to prepare login decoy hash", slog.Any("error", err))

			return
		}
		srv.decoyHash = hash
	})

	return srv.decoyHash
}

func viewAction(kind entity.Kind) policy.Action {
	if kind == entity.KindWalker {
		return policy.ViewWalker
	}

	return policy.ViewOwner
}

func editAction(kind entity.Kind) policy.Action {
	if kind == entity.KindWalker {
		return policy.EditWalker
	}

	return policy.EditOwner
}

func profileTarget(kind entity.Kind, id uuid.UUID) policy.Target {
	if kind == entity.KindWalker {
		return policy.WalkerTarget(id)
	}

	return policy.OwnerTarget(id)
}
