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

// MessageHandlerParams holds dependencies for MessageHandler, injected by Fx.
type MessageHandlerParams struct {
	fx.In

	RelationshipUC usecase.RelationshipUsecase
	Logger         *slog.Logger
}

// MessageHandler serves owner/walker threads.
type MessageHandler struct {
	relationshipUC usecase.RelationshipUsecase
	logger         *slog.Logger
}

// NewMessageHandler is the constructor for MessageHandler.
func NewMessageHandler(params MessageHandlerParams) *MessageHandler {
	return &MessageHandler{
		relationshipUC: params.RelationshipUC,
		logger:         params.Logger,
	}
}

// SendMessageRequest represents the request body for posting to a thread.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Thread handles GET /messages/:ownerId/:walkerId.
func (h *MessageHandler) Thread(c echo.Context) error {
	ownerID, err := pathID(c, "ownerId")
	if err != nil {
		return err
	}
	walkerID, err := pathID(c, "walkerId")
	if err != nil {
		return err
	}

	thread, err := h.relationshipUC.Thread(c.Request().Context(), actor(c), ownerID, walkerID)
	if err != nil {
		return errors.WithStack(err)
	}

	messages := make([]*messageResponse, 0, len(thread.Messages))
	for _, message := range thread.Messages {
		messages = append(messages, toMessageResponse(message))
	}

	return response.Success(c, http.StatusOK, &threadResponse{
		Owner:    toPrincipalResponse(thread.Owner),
		Walker:   toPrincipalResponse(thread.Walker),
		Messages: messages,
	})
}

// Send handles POST /messages/:ownerId/:walkerId. The sender side is taken from the session.
func (h *MessageHandler) Send(c echo.Context) error {
	ownerID, err := pathID(c, "ownerId")
	if err != nil {
		return err
	}
	walkerID, err := pathID(c, "walkerId")
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.relationshipUC.SendMessage(c.Request().Context(), actor(c), ownerID, walkerID, req.Text)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toMessageResponse(message))
}
