package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

type sendMessageRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	ProjectID      string `json:"project_id"`
	RecipientID    string `json:"recipient_id"`
	Body           string `json:"body" validate:"required,min=1"`
}

// MessageDispatcher is the interface the handler uses to enqueue messages
// for ordered delivery. Enqueue reports whether the message was accepted.
type MessageDispatcher interface {
	Enqueue(msg ports.MessageInput) bool
}

// MessageHandler handles the communication center endpoints.
type MessageHandler struct {
	service    ports.MessageService
	dispatcher MessageDispatcher
}

func NewMessageHandler(service ports.MessageService, dispatcher MessageDispatcher) *MessageHandler {
	return &MessageHandler{service: service, dispatcher: dispatcher}
}

// Send enqueues a message for delivery, returning 202. Delivery order
// within a conversation is preserved by the dispatcher shards. When the
// delivery queue is saturated the message is rejected with 503 so the
// client can retry.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	accepted := h.dispatcher.Enqueue(ports.MessageInput{
		ConversationID: req.ConversationID,
		ProjectID:      req.ProjectID,
		SenderID:       sess.Principal.ID,
		RecipientID:    req.RecipientID,
		Body:           req.Body,
	})
	if !accepted {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "message queue is full, try again later")
	}

	return c.JSON(http.StatusAccepted, messageResponse{Message: "message accepted"})
}

// List returns a conversation's messages, oldest first.
//
// @Summary      List a conversation
// @Tags         messages
// @Produce      json
// @Param        conversation_id  path      string  true   "Conversation ID"
// @Param        limit            query     int     false  "Max messages"
// @Success      200              {array}   map[string]any
// @Failure      401              {object}  errorResponse
// @Router       /v1/messages/{conversation_id} [get]
func (h *MessageHandler) List(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	messages, err := h.service.ListConversation(c.Request().Context(), c.Param("conversation_id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// MarkRead flags the caller's unread messages in a conversation.
//
// @Summary      Mark a conversation read
// @Tags         messages
// @Produce      json
// @Param        conversation_id  path      string  true  "Conversation ID"
// @Success      200              {object}  messageResponse
// @Failure      401              {object}  errorResponse
// @Router       /v1/messages/{conversation_id}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), c.Param("conversation_id"), sess.Principal.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "conversation marked read"})
}
