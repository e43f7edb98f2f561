package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	deliverycontext "doggywalk/internal/delivery/context"
	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/policy"
	"doggywalk/internal/domain/repository"
	"doggywalk/internal/domain/service"
	"doggywalk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// legacyDateLayout is still accepted on input; output always uses entity.DateLayout.
const legacyDateLayout = "01-02-2006"

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// BookingServiceParams holds dependencies for bookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *bookingService) CreateAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, input *usecase.CreateAppointmentInput) (*entity.Appointment, error) {
	date, err := parseAppointmentDate(input.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := normalizeStartTime(input.StartTime)
	if err != nil {
		return nil, err
	}
	period := entity.DayPeriod(strings.ToUpper(strings.TrimSpace(input.Period)))
	if !period.IsValid() {
		return nil, invalid("period must be AM or PM")
	}
	if input.DurationMinutes <= 0 {
		return nil, invalid("duration must be a positive number of minutes")
	}

	var appointment *entity.Appointment
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.PrincipalRepo().FindByID(ctx, entity.KindOwner, input.OwnerID); err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.CreateAppointment, policy.OwnerTarget(input.OwnerID)); err != nil {
			return err
		}

		appointment = &entity.Appointment{
			ID:              uuid.New(),
			OwnerID:         input.OwnerID,
			WalkerID:        actor.ID,
			Date:            date,
			StartTime:       startTime,
			Period:          period,
			DurationMinutes: input.DurationMinutes,
		}

		return translateRepoError(repoFactory.AppointmentRepo().Create(ctx, appointment))
	})
	if err != nil {
		srv.log(ctx).Info("Appointment not created", slog.Any("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Appointment created", slog.Any("appointmentID", appointment.ID), slog.Any("walkerID", appointment.WalkerID))

	return appointment, nil
}

func (srv *bookingService) CompleteAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, id uuid.UUID) (*entity.Appointment, error) {
	var appointment *entity.Appointment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		appointments := repoFactory.AppointmentRepo()

		var err error
		if appointment, err = appointments.FindByIDForUpdate(ctx, id); err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.CompleteAppt, policy.AppointmentTarget(appointment, false)); err != nil {
			return err
		}
		if appointment.Completed {
			return nil
		}

		appointment.Complete()

		return translateRepoError(appointments.MarkCompleted(ctx, id))
	})
	if err != nil {
		return nil, err
	}

	return appointment, nil
}

func (srv *bookingService) DeleteAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		appointments := repoFactory.AppointmentRepo()

		appointment, err := appointments.FindByIDForUpdate(ctx, id)
		if err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.DeleteAppt, policy.AppointmentTarget(appointment, false)); err != nil {
			return err
		}

		return translateRepoError(appointments.Delete(ctx, id))
	})
}

func (srv *bookingService) ListAppointments(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, status entity.AppointmentStatus) ([]*entity.Appointment, error) {
	if err := requireKind(kind); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, invalid("status must be pending or completed")
	}

	filter := repository.AppointmentFilter{Status: status}
	if kind == entity.KindOwner {
		filter.OwnerID = &id
	} else {
		filter.WalkerID = &id
	}

	var appointments []*entity.Appointment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.PrincipalRepo().FindByID(ctx, kind, id); err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.ViewAppointments, policy.ListTarget(kind, id)); err != nil {
			return err
		}

		var err error
		appointments, err = repoFactory.AppointmentRepo().List(ctx, filter)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	return appointments, nil
}

// CreateReview locks the appointment row so that concurrent submissions serialise;
// the unique index on reviews turns any remaining race into a conflict.
func (srv *bookingService) CreateReview(ctx context.Context, actor *entity.AuthenticatedPrincipal, appointmentID uuid.UUID, rate int, comment string) (*usecase.ReviewOutput, error) {
	if rate < entity.MinRate || rate > entity.MaxRate {
		return nil, invalid(fmt.Sprintf("rate must be between %d and %d", entity.MinRate, entity.MaxRate))
	}

	output := &usecase.ReviewOutput{}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		appointment, err := repoFactory.AppointmentRepo().FindByIDForUpdate(ctx, appointmentID)
		if err != nil {
			return translateRepoError(err)
		}

		reviewed, err := hasReview(ctx, repoFactory, appointmentID)
		if err != nil {
			return err
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.CreateReview, policy.AppointmentTarget(appointment, reviewed)); err != nil {
			return err
		}

		review := &entity.Review{
			ID:            uuid.New(),
			AppointmentID: appointmentID,
			Rate:          rate,
			Comment:       strings.TrimSpace(comment),
		}
		if err := repoFactory.ReviewRepo().Create(ctx, review); err != nil {
			return translateRepoError(err)
		}
		output.Review = review

		output.WalkerRate, err = recomputeWalkerRate(ctx, repoFactory, appointment.WalkerID)

		return translateRepoError(err)
	})
	if err != nil {
		srv.log(ctx).Info("Review not created", slog.Any("appointmentID", appointmentID), slog.Any("error", err))

		return nil, err
	}

	return output, nil
}

func (srv *bookingService) GetReview(ctx context.Context, actor *entity.AuthenticatedPrincipal, appointmentID uuid.UUID) (*entity.Review, error) {
	var review *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		appointment, err := repoFactory.AppointmentRepo().FindByID(ctx, appointmentID)
		if err != nil {
			return translateRepoError(err)
		}
		if err := policy.NewEngine(repoFactory.ConnectionRepo()).Authorize(ctx, actor, policy.ViewReview, policy.AppointmentTarget(appointment, true)); err != nil {
			return err
		}

		review, err = repoFactory.ReviewRepo().FindByAppointment(ctx, appointmentID)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (srv *bookingService) RecomputeWalkerRate(ctx context.Context, walkerID uuid.UUID) (*float64, error) {
	var rate *float64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		rate, err = recomputeWalkerRate(ctx, repoFactory, walkerID)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	return rate, nil
}

func recomputeWalkerRate(ctx context.Context, repoFactory repository.RepositoryFactory, walkerID uuid.UUID) (*float64, error) {
	rates, err := repoFactory.ReviewRepo().RatesForWalker(ctx, walkerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load walker rates")
	}

	rate := service.MeanRate(rates)
	if err := repoFactory.PrincipalRepo().SetWalkerRate(ctx, walkerID, rate); err != nil {
		return nil, translateRepoError(err)
	}

	return rate, nil
}

func hasReview(ctx context.Context, repoFactory repository.RepositoryFactory, appointmentID uuid.UUID) (bool, error) {
	_, err := repoFactory.ReviewRepo().FindByAppointment(ctx, appointmentID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrReviewNotFound):
		return false, nil
	default:
		return false, err
	}
}

func parseAppointmentDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{entity.DateLayout, legacyDateLayout} {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}

	return time.Time{}, invalid("date must be YYYY-MM-DD")
}

// normalizeStartTime accepts h:mm or hh:mm on a 12-hour clock and returns hh:mm.
func normalizeStartTime(value string) (string, error) {
	hours, minutes, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(minutes) != 2 || len(hours) == 0 || len(hours) > 2 || !allDigits(hours) || !allDigits(minutes) {
		return "", invalid("start time must be hh:mm")
	}

	h, errH := strconv.Atoi(hours)
	m, errM := strconv.Atoi(minutes)
	if errH != nil || errM != nil || h < 1 || h > 12 || m < 0 || m > 59 {
		return "", invalid("start time must be hh:mm on a 12-hour clock")
	}

	return fmt.Sprintf("%02d:%02d", h, m), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
