package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"wknd-backend/config"
	"wknd-backend/internal/status"
	"wknd-backend/models"
	"wknd-backend/monitoring"
	"wknd-backend/utils"
)

// TicketStore is the slice of the store the ticket service needs.
type TicketStore interface {
	SaveTicket(ctx context.Context, t *models.Ticket) error
}

// TicketMailer delivers the issued ticket to the holder.
type TicketMailer interface {
	SendTicket(ticket *models.Ticket, qrPNG []byte) error
}

type TicketService struct {
	store  TicketStore
	mailer TicketMailer
	cfg    *config.Config
}

func NewTicketService(store TicketStore, mailer TicketMailer, cfg *config.Config) *TicketService {
	return &TicketService{
		store:  store,
		mailer: mailer,
		cfg:    cfg,
	}
}

type IssueTicketRequest struct {
	Email            string `json:"email"`
	FullName         string `json:"fullName"`
	EventID          string `json:"eventId"`
	PaymentReference string `json:"paymentReference"`
}

// IssueResult reports what actually happened during issuance. Persisted
// and Notified can diverge: a ticket can be delivered without having been
// stored, never the other way around.
type IssueResult struct {
	TicketID  string
	Persisted bool
	Notified  bool
}

// Issue builds a ticket, encodes it as a QR code, stores it and emails it.
// Delivery is the success criterion: a failed store write is logged and
// swallowed, a failed email fails the whole operation. Issue is not
// idempotent; calling it twice for the same payment reference produces two
// tickets.
func (s *TicketService) Issue(ctx context.Context, req *IssueTicketRequest) (*IssueResult, error) {
	if err := validateIssueTicket(req); err != nil {
		return nil, err
	}

	ticketID, err := s.newTicketID(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("issueTicket: id: %v", err)
	}

	ticket := &models.Ticket{
		TicketID:         ticketID,
		EventID:          req.EventID,
		FullName:         req.FullName,
		Email:            req.Email,
		PaymentReference: req.PaymentReference,
		EventTitle:       s.cfg.EventTitle,
		EventDate:        s.cfg.EventDate,
		EventLocation:    s.cfg.EventLocation,
		IssuedAt:         time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(ticket)
	if err != nil {
		return nil, fmt.Errorf("issueTicket: json.Marshal: %v", err)
	}

	qrPNG, err := qrcode.Encode(string(payload), qrcode.Medium, 300)
	if err != nil {
		return nil, fmt.Errorf("issueTicket: qr encode: %v", err)
	}

	result := &IssueResult{TicketID: ticketID}

	if err := s.store.SaveTicket(ctx, ticket); err != nil {
		log.Printf("issueTicket: ticket save failed for %s: %v", ticketID, err)
	} else {
		result.Persisted = true
	}

	if err := s.mailer.SendTicket(ticket, qrPNG); err != nil {
		monitoring.TrackNotificationFailure("ticket")
		return result, err
	}
	result.Notified = true

	monitoring.TrackTicketIssued()
	return result, nil
}

func (s *TicketService) newTicketID(eventID string) (string, error) {
	suffix, err := utils.DigitSuffix(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%d%s", s.cfg.TicketNamespace, eventID, time.Now().UnixMilli(), suffix), nil
}

func validateIssueTicket(req *IssueTicketRequest) error {
	switch {
	case req.Email == "":
		return &status.ValidationError{Msg: "Email is required"}
	case req.FullName == "":
		return &status.ValidationError{Msg: "Full name is required"}
	case req.EventID == "":
		return &status.ValidationError{Msg: "Event ID is required"}
	case req.PaymentReference == "":
		return &status.ValidationError{Msg: "Payment reference is required"}
	}
	return nil
}
