package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentModel mirrors the 'appointments' table.
type AppointmentModel struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OwnerID         uuid.UUID    `gorm:"type:uuid;not null;index:idx_appointments_owner_date,priority:1"`
	WalkerID        uuid.UUID    `gorm:"type:uuid;not null;index:idx_appointments_walker_date,priority:1"`
	Owner           *OwnerModel  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Walker          *WalkerModel `gorm:"foreignKey:WalkerID;constraint:OnDelete:CASCADE"`
	Date            time.Time    `gorm:"type:date;not null;index:idx_appointments_owner_date,priority:2;index:idx_appointments_walker_date,priority:2"`
	StartTime       string       `gorm:"type:varchar(5);not null"`
	Period          string       `gorm:"type:varchar(2);not null"`
	DurationMinutes int          `gorm:"not null"`
	Completed       bool         `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ReviewModel mirrors the 'reviews' table. The unique index on appointment_id is what
// serialises concurrent review submissions.
type ReviewModel struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	AppointmentID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_appointment"`
	Appointment   *AppointmentModel `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE"`
	Rate          int               `gorm:"not null;check:chk_reviews_rate,rate >= 1 AND rate <= 5"`
	Comment       string            `gorm:"type:text"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// All lists every model in dependency order, for migrations.
func All() []any {
	return []any{
		&AddressModel{},
		&OwnerModel{},
		&WalkerModel{},
		&DogModel{},
		&MessageModel{},
		&ConnectionModel{},
		&AppointmentModel{},
		&ReviewModel{},
	}
}
