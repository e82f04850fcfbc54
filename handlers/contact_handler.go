package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/models"
	"wknd-backend/realtime"
	"wknd-backend/store"
)

type ContactHandler struct {
	store *store.Store
	hub   *realtime.Hub
}

func NewContactHandler(s *store.Store, hub *realtime.Hub) *ContactHandler {
	return &ContactHandler{store: s, hub: hub}
}

// Submit stores a contact form submission as a message record tagged with
// the contact_form source.
func (h *ContactHandler) Submit(e *core.RequestEvent) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if body.Name == "" || body.Email == "" || body.Message == "" {
		return apis.NewBadRequestError("Name, email and message are required", nil)
	}

	msg := &models.Message{
		Text:   body.Message,
		Sender: body.Name,
		Email:  body.Email,
		Source: "contact_form",
	}
	if err := h.store.SaveMessage(e.Request.Context(), msg); err != nil {
		return apiError(err)
	}

	h.hub.Broadcast("new-contact-message", msg)

	return e.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Thank you for contacting us! We'll get back to you soon.",
	})
}
