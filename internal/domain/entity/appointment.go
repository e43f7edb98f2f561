package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical appointment date format.
const DateLayout = "2006-01-02"

// DayPeriod is AM or PM.
type DayPeriod string

const (
	PeriodAM DayPeriod = "AM"
	PeriodPM DayPeriod = "PM"
)

// IsValid checks if the DayPeriod is a valid value.
func (p DayPeriod) IsValid() bool {
	return p == PeriodAM || p == PeriodPM
}

// AppointmentStatus filters appointment listings.
type AppointmentStatus string

const (
	StatusAny       AppointmentStatus = ""
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
)

// IsValid checks if the AppointmentStatus is a valid filter.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusAny, StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// Appointment is a walk booked by a walker for a connected owner.
type Appointment struct {
	ID              uuid.UUID // Primary key.
	OwnerID         uuid.UUID // Customer.
	WalkerID        uuid.UUID // Creator and the only principal allowed to transition it.
	Date            time.Time // Calendar date, time of day is zero.
	StartTime       string    // hh:mm on a 12-hour clock.
	Period          DayPeriod // AM or PM.
	DurationMinutes int       // Walk length.
	Completed       bool      // false = pending, true = completed.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanDelete reports whether the appointment may still be deleted.
func (a *Appointment) CanDelete() bool {
	return !a.Completed
}

// Complete marks the appointment as done. There is no transition back to pending.
func (a *Appointment) Complete() {
	a.Completed = true
}

// DateString renders the date in DateLayout.
func (a *Appointment) DateString() string {
	return a.Date.Format(DateLayout)
}
