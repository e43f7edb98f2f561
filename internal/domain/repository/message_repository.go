package repository

import (
	"context"

	"doggywalk/internal/domain/entity"

	"github.com/google/uuid"
)

// MessageRepository persists the message ledger.
type MessageRepository interface {
	// Create appends a message to the (owner, walker) thread.
	Create(ctx context.Context, message *entity.Message) error

	// ListThread returns the thread between an owner and a walker, oldest first.
	ListThread(ctx context.Context, ownerID, walkerID uuid.UUID) ([]*entity.Message, error)
}

// ConnectionRepository is the read/write side of the relationship graph.
// Connections are never removed except when one of the parties is deleted.
type ConnectionRepository interface {
	// Connect records the (owner, walker) connection. Recording it twice is a no-op.
	Connect(ctx context.Context, ownerID, walkerID uuid.UUID) error

	// IsConnected reports whether the pair has ever exchanged a message.
	IsConnected(ctx context.Context, ownerID, walkerID uuid.UUID) (bool, error)

	// WalkerIDsOf returns the distinct walkers connected to an owner.
	WalkerIDsOf(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)

	// OwnerIDsOf returns the distinct owners connected to a walker.
	OwnerIDsOf(ctx context.Context, walkerID uuid.UUID) ([]uuid.UUID, error)
}
