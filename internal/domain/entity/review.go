package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRate = 1
	MaxRate = 5
)

// Review is the single rating an owner leaves on a completed appointment.
type Review struct {
	ID            uuid.UUID // Primary key.
	AppointmentID uuid.UUID // Unique: one review per appointment.
	Rate          int       // 1..5.
	Comment       string    // Optional.
	CreatedAt     time.Time
}
