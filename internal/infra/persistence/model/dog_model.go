package model

import (
	"time"

	"github.com/google/uuid"
)

// DogModel mirrors the 'dogs' table; rows go away with their owner.
type DogModel struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_dogs_owner"`
	Owner       *OwnerModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name        string      `gorm:"type:varchar(100);not null"`
	Breed       string      `gorm:"type:varchar(100);not null"`
	Weight      int         `gorm:"not null"`
	Age         int         `gorm:"not null"`
	Color       string      `gorm:"type:varchar(50)"`
	Description string      `gorm:"type:text"`
	Photo       string      `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (DogModel) TableName() string {
	return "dogs"
}
