package handler

import (
	"log/slog"
	"net/http"

	"doggywalk/internal/delivery/http/response"
	"doggywalk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DogHandlerParams holds dependencies for DogHandler, injected by Fx.
type DogHandlerParams struct {
	fx.In

	DogUC  usecase.DogUsecase
	Logger *slog.Logger
}

// DogHandler serves dogs and the breed list.
type DogHandler struct {
	dogUC  usecase.DogUsecase
	logger *slog.Logger
}

// NewDogHandler is the constructor for DogHandler.
func NewDogHandler(params DogHandlerParams) *DogHandler {
	return &DogHandler{
		dogUC:  params.DogUC,
		logger: params.Logger,
	}
}

// DogRequest represents the editable fields of a dog.
type DogRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Breed       string `json:"breed" validate:"required,max=100"`
	Weight      int    `json:"weight" validate:"required,gt=0"`
	Age         int    `json:"age" validate:"required,gt=0"`
	Color       string `json:"color" validate:"max=50"`
	Description string `json:"description" validate:"max=1000"`
	Photo       string `json:"photo" validate:"max=500"`
}

func (r *DogRequest) input() *usecase.DogInput {
	return &usecase.DogInput{
		Name:        r.Name,
		Breed:       r.Breed,
		Weight:      r.Weight,
		Age:         r.Age,
		Color:       r.Color,
		Description: r.Description,
		Photo:       r.Photo,
	}
}

// ListDogs handles GET /owners/:id/dogs.
func (h *DogHandler) ListDogs(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	dogs, err := h.dogUC.ListDogs(c.Request().Context(), actor(c), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := make([]*dogResponse, 0, len(dogs))
	for _, dog := range dogs {
		resp = append(resp, toDogResponse(dog))
	}

	return response.Success(c, http.StatusOK, resp)
}

// AddDog handles POST /owners/:id/dogs.
func (h *DogHandler) AddDog(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req DogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dog, err := h.dogUC.AddDog(c.Request().Context(), actor(c), ownerID, req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toDogResponse(dog))
}

// GetDog handles GET /dogs/:id.
func (h *DogHandler) GetDog(c echo.Context) error {
	dogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	dog, err := h.dogUC.GetDog(c.Request().Context(), actor(c), dogID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toDogResponse(dog))
}

// EditDog handles PUT /dogs/:id.
func (h *DogHandler) EditDog(c echo.Context) error {
	dogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req DogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dog, err := h.dogUC.EditDog(c.Request().Context(), actor(c), dogID, req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toDogResponse(dog))
}

// DeleteDog handles DELETE /dogs/:id.
func (h *DogHandler) DeleteDog(c echo.Context) error {
	dogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.dogUC.DeleteDog(c.Request().Context(), actor(c), dogID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// Breeds lists the breeds offered when adding a dog. It never fails.
func (h *DogHandler) Breeds(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.dogUC.Breeds(c.Request().Context()))
}
