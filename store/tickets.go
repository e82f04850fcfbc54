package store

import (
	"context"

	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/internal/status"
	"wknd-backend/models"
)

// SaveTicket persists an issued ticket. Duplicate payment references are
// allowed; the issuer is not idempotent.
func (s *Store) SaveTicket(ctx context.Context, t *models.Ticket) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionTickets)
	if err != nil {
		return &status.PersistenceError{Op: "saveTicket", Err: err}
	}

	record := core.NewRecord(collection)
	record.Set("ticketId", t.TicketID)
	record.Set("eventId", t.EventID)
	record.Set("fullName", t.FullName)
	record.Set("email", t.Email)
	record.Set("paymentReference", t.PaymentReference)
	record.Set("eventTitle", t.EventTitle)
	record.Set("eventDate", t.EventDate)
	record.Set("eventLocation", t.EventLocation)
	record.Set("issuedAt", t.IssuedAt)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return &status.PersistenceError{Op: "saveTicket", Err: err}
	}

	return nil
}

// ListTickets returns all issued tickets, newest first.
func (s *Store) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	records, err := s.app.FindRecordsByFilter(CollectionTickets, "id != ''", "-created", 0, 0)
	if err != nil {
		return nil, &status.PersistenceError{Op: "listTickets", Err: err}
	}

	tickets := make([]models.Ticket, 0, len(records))
	for _, record := range records {
		tickets = append(tickets, models.Ticket{
			TicketID:         record.GetString("ticketId"),
			EventID:          record.GetString("eventId"),
			FullName:         record.GetString("fullName"),
			Email:            record.GetString("email"),
			PaymentReference: record.GetString("paymentReference"),
			EventTitle:       record.GetString("eventTitle"),
			EventDate:        record.GetString("eventDate"),
			EventLocation:    record.GetString("eventLocation"),
			IssuedAt:         record.GetString("issuedAt"),
		})
	}
	return tickets, nil
}
