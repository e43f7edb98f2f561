package handler

import (
	"log/slog"
	"net/http"

	"doggywalk/internal/delivery/http/response"
	"doggywalk/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AppointmentHandlerParams holds dependencies for AppointmentHandler, injected by Fx.
type AppointmentHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	Logger    *slog.Logger
}

// AppointmentHandler serves appointments and their reviews.
type AppointmentHandler struct {
	bookingUC usecase.BookingUsecase
	logger    *slog.Logger
}

// NewAppointmentHandler is the constructor for AppointmentHandler.
func NewAppointmentHandler(params AppointmentHandlerParams) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUC: params.BookingUC,
		logger:    params.Logger,
	}
}

// CreateAppointmentRequest is submitted by a walker for a connected owner.
type CreateAppointmentRequest struct {
	OwnerID         uuid.UUID `json:"owner_id" validate:"required"`
	Date            string    `json:"date" validate:"required"`
	StartTime       string    `json:"start_time" validate:"required"`
	Period          string    `json:"period" validate:"required,oneof=AM PM am pm"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
}

// CreateReviewRequest rates a completed appointment.
type CreateReviewRequest struct {
	Rate    int    `json:"rate" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// Create handles POST /appointments.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req CreateAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appointment, err := h.bookingUC.CreateAppointment(c.Request().Context(), actor(c), &usecase.CreateAppointmentInput{
		OwnerID:         req.OwnerID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		Period:          req.Period,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAppointmentResponse(appointment))
}

// Complete handles POST /appointments/:id/complete.
func (h *AppointmentHandler) Complete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	appointment, err := h.bookingUC.CompleteAppointment(c.Request().Context(), actor(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAppointmentResponse(appointment))
}

// Delete handles DELETE /appointments/:id.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.bookingUC.DeleteAppointment(c.Request().Context(), actor(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// CreateReview handles POST /appointments/:id/review.
func (h *AppointmentHandler) CreateReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.bookingUC.CreateReview(c.Request().Context(), actor(c), id, req.Rate, req.Comment)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, &createdReviewResponse{
		Review:     toReviewResponse(output.Review),
		WalkerRate: output.WalkerRate,
	})
}

// GetReview handles GET /appointments/:id/review.
func (h *AppointmentHandler) GetReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	review, err := h.bookingUC.GetReview(c.Request().Context(), actor(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReviewResponse(review))
}
