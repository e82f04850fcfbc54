package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/models"
	"wknd-backend/realtime"
	"wknd-backend/store"
)

type MessageHandler struct {
	store *store.Store
	hub   *realtime.Hub
}

func NewMessageHandler(s *store.Store, hub *realtime.Hub) *MessageHandler {
	return &MessageHandler{store: s, hub: hub}
}

// ListMessages returns every stored message, newest first.
func (h *MessageHandler) ListMessages(e *core.RequestEvent) error {
	messages, err := h.store.ListMessages(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"messages": messages,
		"count":    len(messages),
	})
}

// ListRoomMessages returns the messages of one chat room.
func (h *MessageHandler) ListRoomMessages(e *core.RequestEvent) error {
	roomID := e.Request.PathValue("roomId")
	if roomID == "" {
		return apis.NewBadRequestError("Room ID is required", nil)
	}

	messages, err := h.store.ListMessagesByRoom(e.Request.Context(), roomID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"messages": messages,
		"count":    len(messages),
	})
}

// CreateMessage stores a message posted over HTTP and fans it out to the
// connected websocket clients.
func (h *MessageHandler) CreateMessage(e *core.RequestEvent) error {
	var msg models.Message
	if err := e.BindBody(&msg); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if msg.Text == "" {
		return apis.NewBadRequestError("Message text is required", nil)
	}
	if msg.Sender == "" {
		msg.Sender = "visitor"
	}

	if err := h.store.SaveMessage(e.Request.Context(), &msg); err != nil {
		return apiError(err)
	}

	h.hub.Broadcast("message", &msg)

	return e.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"data":    msg,
	})
}

// MarkRead flags a message as read.
func (h *MessageHandler) MarkRead(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")
	if id == "" {
		return apis.NewBadRequestError("Message ID is required", nil)
	}

	msg, err := h.store.MarkMessageRead(e.Request.Context(), id)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    msg,
	})
}
