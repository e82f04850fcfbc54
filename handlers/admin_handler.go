package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"wknd-backend/models"
	"wknd-backend/security"
	"wknd-backend/store"
)

// ReplyMailer delivers admin replies to inquiry senders.
type ReplyMailer interface {
	SendReply(to, replyText string) error
}

type AdminHandler struct {
	store  *store.Store
	mailer ReplyMailer
}

func NewAdminHandler(s *store.Store, mailer ReplyMailer) *AdminHandler {
	return &AdminHandler{store: s, mailer: mailer}
}

// ListUsers returns the unique ticket buyers derived from bookings.
func (h *AdminHandler) ListUsers(e *core.RequestEvent, _ *security.Claims) error {
	users, err := h.store.DistinctBookingUsers(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

// ListTickets returns every issued ticket.
func (h *AdminHandler) ListTickets(e *core.RequestEvent, _ *security.Claims) error {
	tickets, err := h.store.ListTickets(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// ListPayments returns every payment snapshot.
func (h *AdminHandler) ListPayments(e *core.RequestEvent, _ *security.Claims) error {
	payments, err := h.store.ListPayments(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"payments": payments,
		"count":    len(payments),
	})
}

// ListMessages returns every message for the admin inbox.
func (h *AdminHandler) ListMessages(e *core.RequestEvent, _ *security.Claims) error {
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

// Stats returns the dashboard aggregation.
func (h *AdminHandler) Stats(e *core.RequestEvent, _ *security.Claims) error {
	stats, err := h.store.Stats(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

// ReplyToMessage stores the reply text on the message and emails it to the
// sender. The replied flag is set before the send; an email failure is
// reported without rolling it back.
func (h *AdminHandler) ReplyToMessage(e *core.RequestEvent, _ *security.Claims) error {
	id := e.Request.PathValue("id")
	if id == "" {
		return apis.NewBadRequestError("Message ID is required", nil)
	}

	var body struct {
		ReplyText string `json:"replyText"`
	}
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if body.ReplyText == "" {
		return apis.NewBadRequestError("Reply text is required", nil)
	}

	msg, err := h.store.MarkMessageReplied(e.Request.Context(), id, body.ReplyText)
	if err != nil {
		return apiError(err)
	}
	if msg.Email == "" {
		return apis.NewBadRequestError("Message has no sender email to reply to", nil)
	}

	if err := h.mailer.SendReply(msg.Email, body.ReplyText); err != nil {
		return e.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Reply saved but email delivery failed",
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Reply sent successfully",
		"data":    msg,
	})
}

// Export streams one resource type as CSV. Zero records produce a
// header-only file.
func (h *AdminHandler) Export(e *core.RequestEvent, _ *security.Claims) error {
	exportType := e.Request.PathValue("type")

	var rows [][]string
	switch exportType {
	case "users":
		users, err := h.store.DistinctBookingUsers(e.Request.Context())
		if err != nil {
			return apiError(err)
		}
		rows = userRows(users)
	case "tickets":
		tickets, err := h.store.ListTickets(e.Request.Context())
		if err != nil {
			return apiError(err)
		}
		rows = ticketRows(tickets)
	case "payments":
		payments, err := h.store.ListPayments(e.Request.Context())
		if err != nil {
			return apiError(err)
		}
		rows = paymentRows(payments)
	default:
		return apis.NewBadRequestError("Invalid export type. Must be one of: users, tickets, payments", nil)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return apis.NewInternalServerError("Failed to build export", nil)
	}

	filename := fmt.Sprintf("%s-export-%s.csv", exportType, time.Now().Format("2006-01-02"))
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	return e.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func userRows(users []store.BookingUser) [][]string {
	rows := [][]string{{"Full Name", "Email", "Phone", "Created At"}}
	for _, u := range users {
		rows = append(rows, []string{u.FullName, u.Email, u.Phone, u.CreatedAt})
	}
	return rows
}

func ticketRows(tickets []models.Ticket) [][]string {
	rows := [][]string{{"Ticket ID", "Full Name", "Email", "Event", "Payment Reference", "Created At"}}
	for _, t := range tickets {
		rows = append(rows, []string{t.TicketID, t.FullName, t.Email, t.EventTitle, t.PaymentReference, t.IssuedAt})
	}
	return rows
}

func paymentRows(payments []models.Payment) [][]string {
	rows := [][]string{{"Reference", "Email", "Amount", "Status", "Created At"}}
	for _, p := range payments {
		amount := decimal.NewFromInt(p.Amount).Div(decimal.NewFromInt(100)).StringFixed(2)
		rows = append(rows, []string{p.Reference, p.CustomerEmail, amount, p.Status, p.Created.Format(time.RFC3339)})
	}
	return rows
}
