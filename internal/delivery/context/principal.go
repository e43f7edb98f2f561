package context

import (
	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// KeyPrincipal is the key for storing the authenticated principal in echo.Context.
	KeyPrincipal ContextKey = "principal"

	// KeyClaims is the key for storing the validated token claims in echo.Context.
	KeyClaims ContextKey = "claims"
)

// SetPrincipal stores the session of the current request.
func SetPrincipal(c echo.Context, principal *entity.AuthenticatedPrincipal, claims *service.Claims) {
	c.Set(string(KeyPrincipal), principal)
	c.Set(string(KeyClaims), claims)
}

// GetPrincipal returns the authenticated principal, if any.
func GetPrincipal(c echo.Context) (*entity.AuthenticatedPrincipal, bool) {
	principal, ok := c.Get(string(KeyPrincipal)).(*entity.AuthenticatedPrincipal)

	return principal, ok && principal != nil
}

// GetClaims returns the token claims of the current request, if any.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(string(KeyClaims)).(*service.Claims)

	return claims, ok && claims != nil
}
