// Package model holds the GORM table mappings.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel mirrors the 'addresses' table.
type AddressModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Line         string    `gorm:"type:varchar(255)"`
	ZipCode      int       `gorm:"not null"`
	City         string    `gorm:"type:varchar(100);not null"`
	State        string    `gorm:"type:varchar(100);not null"`
	Neighborhood string    `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}

// OwnerModel mirrors the 'owners' table. Email is unique among owners only.
type OwnerModel struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	FirstName    string        `gorm:"type:varchar(100);not null"`
	LastName     string        `gorm:"type:varchar(100);not null"`
	Email        string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_owners_email"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Cellphone    string        `gorm:"type:varchar(32)"`
	Photo        string        `gorm:"type:text"`
	AddressID    *uuid.UUID    `gorm:"type:uuid"`
	Address      *AddressModel `gorm:"foreignKey:AddressID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OwnerModel) TableName() string {
	return "owners"
}

// WalkerModel mirrors the 'walkers' table. Email is unique among walkers only.
type WalkerModel struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	FirstName    string        `gorm:"type:varchar(100);not null"`
	LastName     string        `gorm:"type:varchar(100);not null"`
	Email        string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_walkers_email"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Cellphone    string        `gorm:"type:varchar(32)"`
	Photo        string        `gorm:"type:text"`
	Description  string        `gorm:"type:varchar(450)"`
	Rate         *float64      // NULL until the first review
	AddressID    *uuid.UUID    `gorm:"type:uuid"`
	Address      *AddressModel `gorm:"foreignKey:AddressID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (WalkerModel) TableName() string {
	return "walkers"
}
