package store

import (
	"context"

	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/internal/status"
	"wknd-backend/models"
)

// SavePayment appends a gateway transaction snapshot. Payments are
// append-only; no updates are ever performed.
func (s *Store) SavePayment(ctx context.Context, p *models.Payment) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionPayments)
	if err != nil {
		return &status.PersistenceError{Op: "savePayment", Err: err}
	}

	record := core.NewRecord(collection)
	record.Set("reference", p.Reference)
	record.Set("status", p.Status)
	record.Set("amount", p.Amount)
	record.Set("currency", p.Currency)
	record.Set("channel", p.Channel)
	record.Set("email", p.CustomerEmail)
	record.Set("paidAt", p.PaidAt)
	record.Set("raw", string(p.Raw))

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return &status.PersistenceError{Op: "savePayment", Err: err}
	}

	p.ID = record.Id
	return nil
}

// ListPayments returns all payment snapshots, newest first.
func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	records, err := s.app.FindRecordsByFilter(CollectionPayments, "id != ''", "-created", 0, 0)
	if err != nil {
		return nil, &status.PersistenceError{Op: "listPayments", Err: err}
	}

	payments := make([]models.Payment, 0, len(records))
	for _, record := range records {
		payments = append(payments, *paymentFromRecord(record))
	}
	return payments, nil
}

func paymentFromRecord(record *core.Record) *models.Payment {
	return &models.Payment{
		ID:            record.Id,
		Reference:     record.GetString("reference"),
		Status:        record.GetString("status"),
		Amount:        int64(record.GetInt("amount")),
		Currency:      record.GetString("currency"),
		Channel:       record.GetString("channel"),
		CustomerEmail: record.GetString("email"),
		PaidAt:        record.GetString("paidAt"),
		Created:       record.GetDateTime("created").Time(),
	}
}
