package handlers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wknd-backend/models"
	"wknd-backend/store"
)

func TestUserRows_EmptyProducesHeaderOnly(t *testing.T) {
	rows := userRows(nil)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Full Name", "Email", "Phone", "Created At"}, rows[0])
}

func TestTicketRows_EmptyProducesHeaderOnly(t *testing.T) {
	rows := ticketRows(nil)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Ticket ID", "Full Name", "Email", "Event", "Payment Reference", "Created At"}, rows[0])
}

func TestPaymentRows_EmptyProducesHeaderOnly(t *testing.T) {
	rows := paymentRows(nil)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Reference", "Email", "Amount", "Status", "Created At"}, rows[0])
}

func TestUserRows_Content(t *testing.T) {
	rows := userRows([]store.BookingUser{
		{FullName: "Ada Obi", Email: "ada@example.com", Phone: "+2348012345678", CreatedAt: "2026-03-01 12:00:00"},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Ada Obi", "ada@example.com", "+2348012345678", "2026-03-01 12:00:00"}, rows[1])
}

func TestPaymentRows_AmountIsConvertedToMajorUnits(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := paymentRows([]models.Payment{
		{Reference: "ref-1", CustomerEmail: "ada@example.com", Amount: 1550000, Status: "success", Created: created},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "15500.00", rows[1][2])
}

func TestRows_EncodeAsValidCSV(t *testing.T) {
	rows := ticketRows([]models.Ticket{
		{
			TicketID:         "234WKND-weekend2026-17001",
			FullName:         `Obi, Ada "Junior"`,
			Email:            "ada@example.com",
			EventTitle:       "A Weekend Experience",
			PaymentReference: "234wknd_weekend2026_17001",
			IssuedAt:         "2026-03-01T12:00:00Z",
		},
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.WriteAll(rows))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, `Obi, Ada "Junior"`, parsed[1][1])
}
