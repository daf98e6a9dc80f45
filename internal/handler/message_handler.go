package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/metrics"
	"portfolio/internal/model"
	"portfolio/internal/service"
)

// MessageHandler handles the contact form inbox.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// MessageRequest represents a contact form submission.
type MessageRequest struct {
	Name    string `json:"name" validate:"max=255"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Message string `json:"message" validate:"max=10000"`
}

// MarkReadRequest sets the read flag. A missing value means false.
type MarkReadRequest struct {
	Read bool `json:"read"`
}

// MessagesResponse wraps the inbox.
type MessagesResponse struct {
	Messages []model.Message `json:"messages"`
}

// MessageResponse wraps a single message.
type MessageResponse struct {
	Message *model.Message `json:"message"`
}

// CreateMessage godoc
// @Summary Send a contact message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body MessageRequest true "Message"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) CreateMessage(c echo.Context) error {
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	msg, err := h.messageService.Create(c.Request().Context(), req.Name, req.Email, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	metrics.Get().MessagesReceived.Inc()
	return c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// ListMessages godoc
// @Summary List messages, newest first
// @Tags messages
// @Produce json
// @Security SessionCookie
// @Success 200 {object} MessagesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) ListMessages(c echo.Context) error {
	messages, err := h.messageService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessagesResponse{Messages: messages})
}

// MarkRead godoc
// @Summary Set the read flag of a message
// @Tags messages
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Message ID"
// @Param request body MarkReadRequest true "Read flag"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages/{id} [put]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	var req MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	msg, err := h.messageService.MarkRead(c.Request().Context(), c.Param("id"), req.Read)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// DeleteMessage godoc
// @Summary Delete a message
// @Tags messages
// @Produce json
// @Security SessionCookie
// @Param id path string true "Message ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages/{id} [delete]
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	if err := h.messageService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
