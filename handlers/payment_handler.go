package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/internal/status"
	"wknd-backend/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
	tickets  *services.TicketService
}

func NewPaymentHandler(payments *services.PaymentService, tickets *services.TicketService) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		tickets:  tickets,
	}
}

// CreatePayment initializes a gateway checkout session for a booking.
func (h *PaymentHandler) CreatePayment(e *core.RequestEvent) error {
	var req services.CreatePaymentRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	result, err := h.payments.CreatePayment(e.Request.Context(), &req)
	if err != nil {
		var vErr *status.ValidationError
		if errors.As(err, &vErr) {
			return apis.NewBadRequestError(vErr.Msg, nil)
		}
		log.Printf("createPayment: %v", err)
		return apis.NewInternalServerError("Failed to initialize payment", nil)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"authorizationUrl": result.AuthorizationURL,
		"accessCode":       result.AccessCode,
		"reference":        result.Reference,
	})
}

// VerifyPayment confirms a transaction with the gateway. A non-successful
// transaction reports failure without touching the booking.
func (h *PaymentHandler) VerifyPayment(e *core.RequestEvent) error {
	reference := e.Request.PathValue("reference")
	if reference == "" {
		return apis.NewBadRequestError("Payment reference is required", nil)
	}

	tx, err := h.payments.VerifyPayment(e.Request.Context(), reference)
	if err != nil {
		var gwErr *status.GatewayError
		if errors.As(err, &gwErr) {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "Payment verification failed",
			})
		}
		log.Printf("verifyPayment: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Payment verification failed",
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    tx,
	})
}

// GenerateTicket issues and emails a ticket for a verified payment. The
// caller is trusted to have verified the payment first.
func (h *PaymentHandler) GenerateTicket(e *core.RequestEvent) error {
	var req services.IssueTicketRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	result, err := h.tickets.Issue(e.Request.Context(), &req)
	if err != nil {
		var vErr *status.ValidationError
		if errors.As(err, &vErr) {
			return apis.NewBadRequestError(vErr.Msg, nil)
		}

		var nErr *status.NotificationError
		if errors.As(err, &nErr) {
			log.Printf("generateTicket: email delivery failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   "Failed to send ticket email",
			})
		}

		log.Printf("generateTicket: %v", err)
		return apis.NewInternalServerError("Failed to generate ticket", nil)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"ticketId": result.TicketID,
		"message":  "Ticket generated and sent to your email!",
	})
}
