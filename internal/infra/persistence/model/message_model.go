package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageModel mirrors the 'messages' table.
type MessageModel struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID    `gorm:"type:uuid;not null;index:idx_messages_pair,priority:1"`
	WalkerID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_messages_pair,priority:2"`
	Owner          *OwnerModel  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Walker         *WalkerModel `gorm:"foreignKey:WalkerID;constraint:OnDelete:CASCADE"`
	SenderIsWalker bool         `gorm:"not null;default:false"`
	Text           string       `gorm:"type:text;not null"`
	SentAt         time.Time    `gorm:"not null;index"`
	Read           bool         `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}

// ConnectionModel mirrors the 'connections' table: one row per owner/walker pair
// that ever exchanged a message.
type ConnectionModel struct {
	OwnerID   uuid.UUID    `gorm:"type:uuid;primaryKey"`
	WalkerID  uuid.UUID    `gorm:"type:uuid;primaryKey;index:idx_connections_walker"`
	Owner     *OwnerModel  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Walker    *WalkerModel `gorm:"foreignKey:WalkerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ConnectionModel) TableName() string {
	return "connections"
}
