package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "doggywalk/internal/delivery/context"
	domainerrors "doggywalk/internal/domain/errors"
	"doggywalk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
}

// AuthMiddleware resolves the bearer token of a request into its principal.
type AuthMiddleware struct {
	identityUC usecase.IdentityUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{identityUC: params.IdentityUC}
}

// Authenticate rejects requests without a valid, unrevoked session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			return domainerrors.ErrTokenInvalid.WrapMessage("authorization header must be a Bearer token")
		}

		principal, claims, err := m.identityUC.Authenticate(c.Request().Context(), strings.TrimSpace(tokenString))
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetPrincipal(c, principal, claims)

		ctx := c.Request().Context()
		if logger := deliverycontext.LoggerFrom(ctx); logger != nil {
			logger = logger.With(slog.String("principal_kind", principal.Kind.String()), slog.String("principal_id", principal.ID.String()))
			c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, logger)))
		}

		return next(c)
	}
}
