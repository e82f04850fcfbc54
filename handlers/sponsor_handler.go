package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/models"
	"wknd-backend/realtime"
	"wknd-backend/store"
)

type SponsorHandler struct {
	store *store.Store
	hub   *realtime.Hub
}

func NewSponsorHandler(s *store.Store, hub *realtime.Hub) *SponsorHandler {
	return &SponsorHandler{store: s, hub: hub}
}

// CreateInquiry stores a sponsorship inquiry submitted over HTTP and
// notifies the connected admin dashboards.
func (h *SponsorHandler) CreateInquiry(e *core.RequestEvent) error {
	var inq models.SponsorInquiry
	if err := e.BindBody(&inq); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if inq.CompanyName == "" || inq.ContactPerson == "" || inq.Email == "" || inq.Message == "" {
		return apis.NewBadRequestError("Company name, contact person, email and message are required", nil)
	}
	inq.Status = models.InquiryStatusPending

	if err := h.store.SaveInquiry(e.Request.Context(), &inq); err != nil {
		return apiError(err)
	}

	h.hub.Broadcast("new-sponsor-inquiry", &inq)

	return e.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Your sponsorship inquiry has been received!",
		"data":    inq,
	})
}

// ListInquiries returns every sponsorship inquiry, newest first.
func (h *SponsorHandler) ListInquiries(e *core.RequestEvent) error {
	inquiries, err := h.store.ListInquiries(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

// GetInquiry returns one inquiry by id.
func (h *SponsorHandler) GetInquiry(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")
	if id == "" {
		return apis.NewBadRequestError("Inquiry ID is required", nil)
	}

	inq, err := h.store.FindInquiry(e.Request.Context(), id)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    inq,
	})
}

// ListInquiriesByStatus filters inquiries by workflow status.
func (h *SponsorHandler) ListInquiriesByStatus(e *core.RequestEvent) error {
	inqStatus := e.Request.PathValue("status")
	if !models.IsValidInquiryStatus(inqStatus) {
		return apis.NewBadRequestError("Invalid status. Must be one of: pending, reviewing, approved, rejected", nil)
	}

	inquiries, err := h.store.ListInquiriesByStatus(e.Request.Context(), inqStatus)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

// UpdateInquiryStatus moves an inquiry through the review workflow.
func (h *SponsorHandler) UpdateInquiryStatus(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")
	if id == "" {
		return apis.NewBadRequestError("Inquiry ID is required", nil)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if !models.IsValidInquiryStatus(body.Status) {
		return apis.NewBadRequestError("Invalid status. Must be one of: pending, reviewing, approved, rejected", nil)
	}

	inq, err := h.store.UpdateInquiryStatus(e.Request.Context(), id, body.Status)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    inq,
	})
}
