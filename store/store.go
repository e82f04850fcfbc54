// Package store provides typed accessors over the PocketBase collections.
// It owns collection naming and is constructed with an explicit app handle
// so the services stay testable without a live database.
package store

import (
	"github.com/pocketbase/pocketbase/core"
)

const (
	CollectionBookings  = "bookings"
	CollectionPayments  = "payments"
	CollectionTickets   = "tickets"
	CollectionMessages  = "messages"
	CollectionInquiries = "sponsor_inquiries"
	CollectionUsers     = "app_users"
)

type Store struct {
	app core.App
}

func New(app core.App) *Store {
	return &Store{app: app}
}
