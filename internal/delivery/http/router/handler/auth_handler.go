// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "doggywalk/internal/delivery/context"
	"doggywalk/internal/delivery/http/response"
	"doggywalk/internal/domain/entity"
	domainerrors "doggywalk/internal/domain/errors"
	"doggywalk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	Logger     *slog.Logger
}

// AuthHandler serves signup, login, logout and the current session.
type AuthHandler struct {
	identityUC usecase.IdentityUsecase
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		identityUC: params.IdentityUC,
		logger:     params.Logger,
	}
}

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Kind      entity.Kind `json:"kind" validate:"required,oneof=owner walker"`
	FirstName string      `json:"first_name" validate:"required,max=100"`
	LastName  string      `json:"last_name" validate:"required,max=100"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,max=72"`
}

// LoginRequest represents the request body for opening a session.
type LoginRequest struct {
	Kind     entity.Kind `json:"kind" validate:"required,oneof=owner walker"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
}

// Signup handles account creation and returns an open session.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.identityUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Kind:      req.Kind,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSessionResponse(output))
}

// Login handles credential checks for either principal kind.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.identityUC.Login(c.Request().Context(), &usecase.LoginInput{
		Kind:     req.Kind,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponse(output))
}

// Logout revokes the token the request was made with.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := deliverycontext.GetClaims(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	if err := h.identityUC.Logout(c.Request().Context(), claims); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// Me returns the profile of the authenticated principal.
func (h *AuthHandler) Me(c echo.Context) error {
	principal := actor(c)
	if principal == nil {
		return domainerrors.ErrUnauthenticated
	}

	profile, err := h.identityUC.GetProfile(c.Request().Context(), principal, principal.Kind, principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPrincipalResponse(profile))
}
