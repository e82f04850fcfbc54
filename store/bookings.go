package store

import (
	"context"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/internal/status"
	"wknd-backend/models"
)

// SaveBooking persists a new booking record. The reference acts as the
// booking's natural key; bookings are never deleted.
func (s *Store) SaveBooking(ctx context.Context, b *models.Booking) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionBookings)
	if err != nil {
		return &status.PersistenceError{Op: "saveBooking", Err: err}
	}

	record := core.NewRecord(collection)
	record.Set("reference", b.Reference)
	record.Set("eventId", b.EventID)
	record.Set("email", b.Email)
	record.Set("fullName", b.FullName)
	record.Set("phone", b.Phone)
	record.Set("amount", b.Amount)
	record.Set("status", b.Status)
	record.Set("paymentStatus", b.PaymentStatus)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return &status.PersistenceError{Op: "saveBooking", Err: err}
	}

	b.ID = record.Id
	return nil
}

// FindBookingByReference looks a booking up by its payment reference.
func (s *Store) FindBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	record, err := s.app.FindFirstRecordByFilter(
		CollectionBookings,
		"reference = {:reference}",
		dbx.Params{"reference": reference},
	)
	if err != nil {
		return nil, &status.NotFoundError{Resource: "booking", Key: reference}
	}

	return bookingFromRecord(record), nil
}

// CompleteBooking flips the booking matching reference from pending to
// completed and attaches the gateway's transaction snapshot. The pending →
// completed transition is the only one ever performed.
func (s *Store) CompleteBooking(ctx context.Context, reference string, snapshot []byte) error {
	record, err := s.app.FindFirstRecordByFilter(
		CollectionBookings,
		"reference = {:reference}",
		dbx.Params{"reference": reference},
	)
	if err != nil {
		return &status.NotFoundError{Resource: "booking", Key: reference}
	}

	record.Set("status", models.BookingStatusCompleted)
	record.Set("paymentStatus", models.BookingStatusCompleted)
	record.Set("paymentData", string(snapshot))

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return &status.PersistenceError{Op: "completeBooking", Err: err}
	}

	return nil
}

func bookingFromRecord(record *core.Record) *models.Booking {
	return &models.Booking{
		ID:            record.Id,
		Reference:     record.GetString("reference"),
		EventID:       record.GetString("eventId"),
		Email:         record.GetString("email"),
		FullName:      record.GetString("fullName"),
		Phone:         record.GetString("phone"),
		Amount:        int64(record.GetInt("amount")),
		Status:        record.GetString("status"),
		PaymentStatus: record.GetString("paymentStatus"),
		Created:       record.GetDateTime("created").Time(),
		Updated:       record.GetDateTime("updated").Time(),
	}
}
