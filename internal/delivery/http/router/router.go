// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"doggywalk/internal/delivery/http/middleware"
	"doggywalk/internal/delivery/http/router/handler"
	"doggywalk/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	PrincipalHandler   *handler.PrincipalHandler
	DogHandler         *handler.DogHandler
	MessageHandler     *handler.MessageHandler
	AppointmentHandler *handler.AppointmentHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	principalHandler   *handler.PrincipalHandler
	dogHandler         *handler.DogHandler
	messageHandler     *handler.MessageHandler
	appointmentHandler *handler.AppointmentHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		principalHandler:   params.PrincipalHandler,
		dogHandler:         params.DogHandler,
		messageHandler:     params.MessageHandler,
		appointmentHandler: params.AppointmentHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Public routes
	e.POST("/auth/signup", r.authHandler.Signup)
	e.POST("/auth/login", r.authHandler.Login)
	e.GET("/walkers", r.principalHandler.SearchWalkers)
	e.GET("/breeds", r.dogHandler.Breeds)

	// Everything below requires a session.
	auth := r.authMiddleware.Authenticate
	e.POST("/auth/logout", r.authHandler.Logout, auth)
	e.GET("/me", r.authHandler.Me, auth)

	owners := e.Group("/owners/:id", auth)
	{
		owners.GET("", r.principalHandler.GetProfile(entity.KindOwner))
		owners.PUT("", r.principalHandler.EditProfile(entity.KindOwner))
		owners.DELETE("", r.principalHandler.Delete(entity.KindOwner))
		owners.PUT("/address", r.principalHandler.UpdateAddress(entity.KindOwner))
		owners.GET("/inbox", r.principalHandler.Inbox(entity.KindOwner))
		owners.GET("/appointments", r.principalHandler.Appointments(entity.KindOwner))
		owners.GET("/dogs", r.dogHandler.ListDogs)
		owners.POST("/dogs", r.dogHandler.AddDog)
	}

	walkers := e.Group("/walkers/:id", auth)
	{
		walkers.GET("", r.principalHandler.GetProfile(entity.KindWalker))
		walkers.PUT("", r.principalHandler.EditProfile(entity.KindWalker))
		walkers.DELETE("", r.principalHandler.Delete(entity.KindWalker))
		walkers.PUT("/address", r.principalHandler.UpdateAddress(entity.KindWalker))
		walkers.GET("/inbox", r.principalHandler.Inbox(entity.KindWalker))
		walkers.GET("/appointments", r.principalHandler.Appointments(entity.KindWalker))
		walkers.GET("/qrcode", r.principalHandler.WalkerQRCode)
	}

	dogs := e.Group("/dogs/:id", auth)
	{
		dogs.GET("", r.dogHandler.GetDog)
		dogs.PUT("", r.dogHandler.EditDog)
		dogs.DELETE("", r.dogHandler.DeleteDog)
	}

	messages := e.Group("/messages/:ownerId/:walkerId", auth)
	{
		messages.GET("", r.messageHandler.Thread)
		messages.POST("", r.messageHandler.Send)
	}

	appointments := e.Group("/appointments", auth)
	{
		appointments.POST("", r.appointmentHandler.Create)
		appointments.DELETE("/:id", r.appointmentHandler.Delete)
		appointments.POST("/:id/complete", r.appointmentHandler.Complete)
		appointments.POST("/:id/review", r.appointmentHandler.CreateReview)
		appointments.GET("/:id/review", r.appointmentHandler.GetReview)
	}
}
