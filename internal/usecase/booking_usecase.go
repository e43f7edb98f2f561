package usecase

import (
	"context"

	"doggywalk/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAppointmentInput is what a walker submits to book a walk.
type CreateAppointmentInput struct {
	OwnerID         uuid.UUID
	Date            string // YYYY-MM-DD, or MM-DD-YYYY
	StartTime       string // h:mm or hh:mm, 12-hour clock
	Period          string // AM or PM
	DurationMinutes int
}

// ReviewOutput is a stored review and the walker rate it produced.
type ReviewOutput struct {
	Review     *entity.Review
	WalkerRate *float64
}

// BookingUsecase drives appointments from creation to review.
type BookingUsecase interface {
	CreateAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, input *CreateAppointmentInput) (*entity.Appointment, error)
	// CompleteAppointment is idempotent.
	CompleteAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, id uuid.UUID) (*entity.Appointment, error)
	DeleteAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, id uuid.UUID) error
	ListAppointments(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, status entity.AppointmentStatus) ([]*entity.Appointment, error)

	// CreateReview stores the single review of a completed appointment and
	// recomputes the walker's rate in the same transaction.
	CreateReview(ctx context.Context, actor *entity.AuthenticatedPrincipal, appointmentID uuid.UUID, rate int, comment string) (*ReviewOutput, error)
	GetReview(ctx context.Context, actor *entity.AuthenticatedPrincipal, appointmentID uuid.UUID) (*entity.Review, error)
	// RecomputeWalkerRate stores and returns the mean rate of the walker's reviews.
	RecomputeWalkerRate(ctx context.Context, walkerID uuid.UUID) (*float64, error)
}
