package repository

import (
	"context"
	"errors"

	"doggywalk/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrAppointmentNotFound is returned when an appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrReviewNotFound is returned when an appointment has no review.
	ErrReviewNotFound = errors.New("review not found")

	// ErrReviewExists is returned when the unique review-per-appointment index rejects an insert.
	ErrReviewExists = errors.New("review already exists")
)

// AppointmentFilter narrows appointment listings to one principal.
type AppointmentFilter struct {
	OwnerID  *uuid.UUID
	WalkerID *uuid.UUID
	Status   entity.AppointmentStatus
}

// AppointmentRepository persists appointments.
type AppointmentRepository interface {
	// FindByID loads an appointment.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)

	// FindByIDForUpdate loads an appointment and locks its row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)

	// List returns matching appointments ordered by date then start time.
	List(ctx context.Context, filter AppointmentFilter) ([]*entity.Appointment, error)

	Create(ctx context.Context, appointment *entity.Appointment) error

	// MarkCompleted sets the completed flag.
	MarkCompleted(ctx context.Context, id uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	// FindByAppointment returns the review of an appointment or ErrReviewNotFound.
	FindByAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Review, error)

	// Create inserts a review; a second review for the same appointment yields ErrReviewExists.
	Create(ctx context.Context, review *entity.Review) error

	// RatesForWalker returns every review rate across the walker's appointments.
	RatesForWalker(ctx context.Context, walkerID uuid.UUID) ([]int, error)
}
