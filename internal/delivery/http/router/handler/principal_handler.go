package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "doggywalk/internal/delivery/context"
	"doggywalk/internal/delivery/http/response"
	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/service"
	"doggywalk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PrincipalHandlerParams holds dependencies for PrincipalHandler, injected by Fx.
type PrincipalHandlerParams struct {
	fx.In

	IdentityUC     usecase.IdentityUsecase
	RelationshipUC usecase.RelationshipUsecase
	BookingUC      usecase.BookingUsecase
	QRCode         service.QRCodeService
	Logger         *slog.Logger
}

// PrincipalHandler serves the /owners and /walkers resources. Most endpoints are
// shared, so handlers are built per kind.
type PrincipalHandler struct {
	identityUC     usecase.IdentityUsecase
	relationshipUC usecase.RelationshipUsecase
	bookingUC      usecase.BookingUsecase
	qrCode         service.QRCodeService
	logger         *slog.Logger
}

// NewPrincipalHandler is the constructor for PrincipalHandler.
func NewPrincipalHandler(params PrincipalHandlerParams) *PrincipalHandler {
	return &PrincipalHandler{
		identityUC:     params.IdentityUC,
		relationshipUC: params.RelationshipUC,
		bookingUC:      params.BookingUC,
		qrCode:         params.QRCode,
		logger:         params.Logger,
	}
}

// EditProfileRequest carries the fields to change; absent fields are kept.
type EditProfileRequest struct {
	FirstName       *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName        *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Cellphone       *string `json:"cellphone" validate:"omitempty,max=30"`
	Photo           *string `json:"photo" validate:"omitempty,max=500"`
	Description     *string `json:"description" validate:"omitempty,max=450"`
	NewPassword     *string `json:"new_password" validate:"omitnil,max=72"`
	CurrentPassword string  `json:"current_password" validate:"required"`
}

// AddressRequest is the full address of a principal.
type AddressRequest struct {
	Line         string `json:"line" validate:"max=200"`
	ZipCode      int    `json:"zip_code" validate:"required,gt=0"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	Neighborhood string `json:"neighborhood" validate:"required,max=100"`
}

// GetProfile returns the profile of the principal of kind named by :id.
func (h *PrincipalHandler) GetProfile(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		profile, err := h.identityUC.GetProfile(c.Request().Context(), actor(c), kind, id)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toPrincipalResponse(profile))
	}
}

// EditProfile applies a profile change confirmed with the current password.
func (h *PrincipalHandler) EditProfile(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		var req EditProfileRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		profile, err := h.identityUC.EditProfile(c.Request().Context(), actor(c), kind, id, &usecase.EditProfileInput{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			Cellphone:       req.Cellphone,
			Photo:           req.Photo,
			Description:     req.Description,
			NewPassword:     req.NewPassword,
			CurrentPassword: req.CurrentPassword,
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toPrincipalResponse(profile))
	}
}

// UpdateAddress creates or replaces the principal's address.
func (h *PrincipalHandler) UpdateAddress(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		var req AddressRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		address, err := h.identityUC.UpdateAddress(c.Request().Context(), actor(c), kind, id, &usecase.AddressInput{
			Line:         req.Line,
			ZipCode:      req.ZipCode,
			City:         req.City,
			State:        req.State,
			Neighborhood: req.Neighborhood,
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toAddressResponse(address))
	}
}

// Delete removes the account with everything it owns, then ends the session.
func (h *PrincipalHandler) Delete(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		if err := h.identityUC.DeletePrincipal(ctx, actor(c), kind, id); err != nil {
			return errors.WithStack(err)
		}

		if claims, ok := deliverycontext.GetClaims(c); ok {
			if err := h.identityUC.Logout(ctx, claims); err != nil {
				deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("Account deleted but token not revoked", slog.Any("error", err))
			}
		}

		return response.NoContent(c)
	}
}

// Inbox lists the principals :id has exchanged messages with.
func (h *PrincipalHandler) Inbox(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		counterparties, err := h.relationshipUC.Inbox(c.Request().Context(), actor(c), kind, id)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toPrincipalResponses(counterparties))
	}
}

// Appointments lists the appointments of :id, optionally filtered by ?status=.
func (h *PrincipalHandler) Appointments(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		status := entity.AppointmentStatus(c.QueryParam("status"))
		appointments, err := h.bookingUC.ListAppointments(c.Request().Context(), actor(c), kind, id, status)
		if err != nil {
			return errors.WithStack(err)
		}

		resp := make([]*appointmentResponse, 0, len(appointments))
		for _, appointment := range appointments {
			resp = append(resp, toAppointmentResponse(appointment))
		}

		return response.Success(c, http.StatusOK, resp)
	}
}

// SearchWalkers matches ?q= against walker names.
func (h *PrincipalHandler) SearchWalkers(c echo.Context) error {
	walkers, err := h.identityUC.SearchWalkers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPrincipalResponses(walkers))
}

// WalkerQRCode renders a PNG linking to the walker's profile.
func (h *PrincipalHandler) WalkerQRCode(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.identityUC.GetProfile(c.Request().Context(), actor(c), entity.KindWalker, id); err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrCode.GenerateWalkerQR(id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
