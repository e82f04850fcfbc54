package store

import (
	"context"

	"github.com/pocketbase/dbx"
	"github.com/shopspring/decimal"

	"wknd-backend/internal/status"
)

// BookingUser is a unique ticket buyer derived from the bookings
// collection; there is no separate customer registry.
type BookingUser struct {
	Email     string `db:"email" json:"email"`
	FullName  string `db:"fullName" json:"fullName"`
	Phone     string `db:"phone" json:"phone"`
	CreatedAt string `db:"createdAt" json:"createdAt"`
}

type DashboardStats struct {
	TotalUsers      int64   `json:"totalUsers"`
	TotalTickets    int64   `json:"totalTickets"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingMessages int64   `json:"pendingMessages"`
}

// DistinctBookingUsers groups bookings by email, newest buyer first.
func (s *Store) DistinctBookingUsers(ctx context.Context) ([]BookingUser, error) {
	users := []BookingUser{}
	err := s.app.DB().
		NewQuery("SELECT email, fullName, phone, MIN(created) AS createdAt FROM " + CollectionBookings + " GROUP BY email ORDER BY createdAt DESC").
		All(&users)
	if err != nil {
		return nil, &status.PersistenceError{Op: "distinctBookingUsers", Err: err}
	}
	return users, nil
}

// Stats aggregates the admin dashboard numbers. Revenue sums successful
// payment amounts and converts from minor units at this boundary.
func (s *Store) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var userCount struct {
		Total int64 `db:"total"`
	}
	err := s.app.DB().
		NewQuery("SELECT COUNT(DISTINCT email) AS total FROM " + CollectionBookings).
		One(&userCount)
	if err != nil {
		return nil, &status.PersistenceError{Op: "stats", Err: err}
	}
	stats.TotalUsers = userCount.Total

	tickets, err := s.app.CountRecords(CollectionTickets)
	if err != nil {
		return nil, &status.PersistenceError{Op: "stats", Err: err}
	}
	stats.TotalTickets = tickets

	var revenue struct {
		Total int64 `db:"total"`
	}
	err = s.app.DB().
		NewQuery("SELECT COALESCE(SUM(amount), 0) AS total FROM " + CollectionPayments + " WHERE status = 'success'").
		One(&revenue)
	if err != nil {
		return nil, &status.PersistenceError{Op: "stats", Err: err}
	}
	stats.TotalRevenue = decimal.NewFromInt(revenue.Total).Div(decimal.NewFromInt(100)).InexactFloat64()

	pending, err := s.app.CountRecords(CollectionMessages, dbx.HashExp{"replied": false})
	if err != nil {
		return nil, &status.PersistenceError{Op: "stats", Err: err}
	}
	stats.PendingMessages = pending

	return stats, nil
}
