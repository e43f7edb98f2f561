package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry of the thread between an owner and a walker.
type Message struct {
	ID             uuid.UUID // Primary key.
	OwnerID        uuid.UUID // Owner side of the thread.
	WalkerID       uuid.UUID // Walker side of the thread.
	SenderIsWalker bool      // True when the walker wrote it.
	Text           string    // Body, never empty.
	SentAt         time.Time // UTC creation time.
	Read           bool      // Stored only.
}

// Connection is the permanent owner/walker link created by their first message.
type Connection struct {
	OwnerID   uuid.UUID
	WalkerID  uuid.UUID
	CreatedAt time.Time
}
