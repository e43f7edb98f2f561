package handler

import (
	deliverycontext "doggywalk/internal/delivery/context"
	"doggywalk/internal/domain/entity"
	domainerrors "doggywalk/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindAndValidate decodes the request into req and checks its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return errors.WithStack(c.Validate(req))
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return id, nil
}

// actor returns the authenticated principal; routes without the auth middleware get nil.
func actor(c echo.Context) *entity.AuthenticatedPrincipal {
	principal, _ := deliverycontext.GetPrincipal(c)

	return principal
}
