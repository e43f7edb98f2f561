package usecase

import (
	"context"

	"doggywalk/internal/domain/entity"

	"github.com/google/uuid"
)

// ThreadOutput is the conversation between one owner and one walker.
type ThreadOutput struct {
	Owner    *entity.Principal
	Walker   *entity.Principal
	Messages []*entity.Message
}

// RelationshipUsecase exposes the owner/walker graph and the messages that build it.
type RelationshipUsecase interface {
	IsConnected(ctx context.Context, ownerID, walkerID uuid.UUID) (bool, error)
	ConnectedWalkersOf(ctx context.Context, ownerID uuid.UUID) ([]*entity.Principal, error)
	ConnectedOwnersOf(ctx context.Context, walkerID uuid.UUID) ([]*entity.Principal, error)

	// Inbox lists the distinct counterparties of a principal, viewable by that principal only.
	Inbox(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) ([]*entity.Principal, error)
	// SendMessage appends to the thread and connects the pair.
	SendMessage(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID, walkerID uuid.UUID, text string) (*entity.Message, error)
	Thread(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID, walkerID uuid.UUID) (*ThreadOutput, error)
}
