package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "doggywalk/internal/delivery/context"
	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/policy"
	"doggywalk/internal/domain/repository"
	"doggywalk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// relationshipService implements the RelationshipUsecase interface.
type relationshipService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// RelationshipServiceParams holds dependencies for relationshipService, injected by Fx.
type RelationshipServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewRelationshipService is the constructor for relationshipService.
func NewRelationshipService(params RelationshipServiceParams) usecase.RelationshipUsecase {
	return &relationshipService{
		txManager: params.TxManager,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *relationshipService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *relationshipService) IsConnected(ctx context.Context, ownerID, walkerID uuid.UUID) (bool, error) {
	var connected bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		connected, err = repoFactory.ConnectionRepo().IsConnected(ctx, ownerID, walkerID)

		return translateRepoError(err)
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to check connection")
	}

	return connected, nil
}

func (srv *relationshipService) ConnectedWalkersOf(ctx context.Context, ownerID uuid.UUID) ([]*entity.Principal, error) {
	return srv.counterparties(ctx, entity.KindOwner, ownerID)
}

func (srv *relationshipService) ConnectedOwnersOf(ctx context.Context, walkerID uuid.UUID) ([]*entity.Principal, error) {
	return srv.counterparties(ctx, entity.KindWalker, walkerID)
}

func (srv *relationshipService) counterparties(ctx context.Context, kind entity.Kind, id uuid.UUID) ([]*entity.Principal, error) {
	var principals []*entity.Principal
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		principals, err = loadCounterparties(ctx, repoFactory, kind, id)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load connections")
	}

	return principals, nil
}

func loadCounterparties(ctx context.Context, repoFactory repository.RepositoryFactory, kind entity.Kind, id uuid.UUID) ([]*entity.Principal, error) {
	connections := repoFactory.ConnectionRepo()

	if kind == entity.KindOwner {
		ids, err := connections.WalkerIDsOf(ctx, id)
		if err != nil {
			return nil, err
		}

		return repoFactory.PrincipalRepo().FindManyByIDs(ctx, entity.KindWalker, ids)
	}

	ids, err := connections.OwnerIDsOf(ctx, id)
	if err != nil {
		return nil, err
	}

	return repoFactory.PrincipalRepo().FindManyByIDs(ctx, entity.KindOwner, ids)
}

func (srv *relationshipService) Inbox(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) ([]*entity.Principal, error) {
	if err := requireKind(kind); err != nil {
		return nil, err
	}

	var principals []*entity.Principal
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.PrincipalRepo().FindByID(ctx, kind, id); err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.ViewInbox, policy.ListTarget(kind, id)); err != nil {
			return err
		}

		var err error
		principals, err = loadCounterparties(ctx, repoFactory, kind, id)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	return principals, nil
}

// SendMessage records the connection in the same transaction as the message, so a
// pair is connected exactly when at least one message was ever stored.
func (srv *relationshipService) SendMessage(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID, walkerID uuid.UUID, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("message text is required")
	}

	var message *entity.Message
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireParties(ctx, repoFactory, ownerID, walkerID); err != nil {
			return err
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.SendMessage, policy.ThreadTarget(ownerID, walkerID)); err != nil {
			return err
		}

		message = &entity.Message{
			ID:             uuid.New(),
			OwnerID:        ownerID,
			WalkerID:       walkerID,
			SenderIsWalker: actor.Kind == entity.KindWalker,
			Text:           text,
			SentAt:         srv.now().UTC(),
		}
		if err := repoFactory.MessageRepo().Create(ctx, message); err != nil {
			return translateRepoError(err)
		}

		return translateRepoError(repoFactory.ConnectionRepo().Connect(ctx, ownerID, walkerID))
	})
	if err != nil {
		srv.log(ctx).Info("Message not sent", slog.Any("ownerID", ownerID), slog.Any("walkerID", walkerID), slog.Any("error", err))

		return nil, err
	}

	return message, nil
}

func (srv *relationshipService) Thread(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID, walkerID uuid.UUID) (*usecase.ThreadOutput, error) {
	output := &usecase.ThreadOutput{}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		if output.Owner, err = repoFactory.PrincipalRepo().FindByID(ctx, entity.KindOwner, ownerID); err != nil {
			return translateRepoError(err)
		}
		if output.Walker, err = repoFactory.PrincipalRepo().FindByID(ctx, entity.KindWalker, walkerID); err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.ViewThread, policy.ThreadTarget(ownerID, walkerID)); err != nil {
			return err
		}

		output.Messages, err = repoFactory.MessageRepo().ListThread(ctx, ownerID, walkerID)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func requireParties(ctx context.Context, repoFactory repository.RepositoryFactory, ownerID, walkerID uuid.UUID) error {
	if _, err := repoFactory.PrincipalRepo().FindByID(ctx, entity.KindOwner, ownerID); err != nil {
		return translateRepoError(err)
	}
	if _, err := repoFactory.PrincipalRepo().FindByID(ctx, entity.KindWalker, walkerID); err != nil {
		return translateRepoError(err)
	}

	return nil
}
