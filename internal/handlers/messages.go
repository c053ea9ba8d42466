package handlers

import (
	"context"
	"errors"

	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/m1z23r/drift/pkg/drift"
)

type MessagesHandler struct {
	messageService MessageServiceInterface
}

func NewMessagesHandler(messageService MessageServiceInterface) *MessagesHandler {
	return &MessagesHandler{messageService: messageService}
}

func messageResponse(m *models.ContactMessage) dto.ContactMessageResponse {
	return dto.ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// Submit is the public contact form endpoint.
func (h *MessagesHandler) Submit(c *drift.Context) {
	var req dto.ContactMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid message: " + err.Error())
		return
	}

	msg, err := h.messageService.Create(context.Background(), req.Name, req.Email, req.Subject, req.Body)
	if err != nil {
		c.InternalServerError("failed to submit message")
		return
	}
	_ = c.JSON(201, messageResponse(msg))
}

func (h *MessagesHandler) List(c *drift.Context) {
	unreadOnly := c.QueryParam("unread") == "true"

	messages, err := h.messageService.List(context.Background(), unreadOnly)
	if err != nil {
		c.InternalServerError("failed to list messages")
		return
	}

	resp := make([]dto.ContactMessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, messageResponse(&messages[i]))
	}
	_ = c.JSON(200, resp)
}

func (h *MessagesHandler) MarkRead(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid message ID")
		return
	}

	var req dto.MarkReadRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	msg, err := h.messageService.MarkRead(context.Background(), id, req.Read)
	if err != nil {
		c.NotFound("message not found")
		return
	}
	_ = c.JSON(200, messageResponse(msg))
}

func (h *MessagesHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid message ID")
		return
	}

	if err := h.messageService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.NotFound("message not found")
			return
		}
		c.InternalServerError("failed to delete message")
		return
	}
	_ = c.JSON(200, map[string]string{"message": "message deleted"})
}
