package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusCompleted = "completed"
)

// Booking is created on payment initialization and flipped to completed
// only after a successful gateway verification. Amount is held in the
// gateway's minor units (kobo).
type Booking struct {
	ID            string    `json:"id,omitempty"`
	Reference     string    `json:"reference"`
	EventID       string    `json:"eventId"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	Created       time.Time `json:"createdAt"`
	Updated       time.Time `json:"updatedAt"`
}
