package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"wknd-backend/config"
	"wknd-backend/internal/paystack"
	"wknd-backend/internal/status"
	"wknd-backend/models"
	"wknd-backend/monitoring"
	"wknd-backend/utils"
)

// Gateway is the slice of the payment provider the service needs.
type Gateway interface {
	Initialize(ctx context.Context, f *paystack.InitializeRequest) (*paystack.InitializeResult, error)
	Verify(ctx context.Context, reference string) (*paystack.Transaction, error)
}

// BookingStore is the slice of the store the service needs.
type BookingStore interface {
	SaveBooking(ctx context.Context, b *models.Booking) error
	SavePayment(ctx context.Context, p *models.Payment) error
	CompleteBooking(ctx context.Context, reference string, snapshot []byte) error
}

type PaymentService struct {
	gateway Gateway
	store   BookingStore
	cfg     *config.Config
}

func NewPaymentService(gateway Gateway, store BookingStore, cfg *config.Config) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		store:   store,
		cfg:     cfg,
	}
}

type CreatePaymentRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	EventID  string `json:"eventId"`
	Amount   int64  `json:"amount"` // ticket price in major units
}

// CreatePayment initializes a gateway transaction for a booking and records
// the booking as pending. The gateway call is authoritative: a failed
// booking write is logged and swallowed, the customer still gets their
// checkout link.
func (s *PaymentService) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*paystack.InitializeResult, error) {
	if err := validateCreatePayment(req); err != nil {
		return nil, err
	}

	reference, err := s.newBookingReference(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("createPayment: reference: %v", err)
	}

	amountMinor := toMinorUnits(req.Amount + s.cfg.ServiceFee)

	result, err := s.gateway.Initialize(ctx, &paystack.InitializeRequest{
		Email:       req.Email,
		FullName:    req.FullName,
		Phone:       req.Phone,
		EventID:     req.EventID,
		AmountMinor: amountMinor,
		Currency:    s.cfg.Currency,
		Reference:   reference,
		CallbackURL: fmt.Sprintf("%s/payment/callback", s.cfg.ClientURL),
	})
	if err != nil {
		monitoring.TrackPaymentInit("failed")
		return nil, err
	}
	monitoring.TrackPaymentInit("success")

	booking := &models.Booking{
		Reference:     reference,
		EventID:       req.EventID,
		Email:         req.Email,
		FullName:      req.FullName,
		Phone:         req.Phone,
		Amount:        amountMinor,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.BookingStatusPending,
	}
	if err := s.store.SaveBooking(ctx, booking); err != nil {
		log.Printf("createPayment: booking save failed for %s: %v", reference, err)
	}

	return result, nil
}

// VerifyPayment confirms a transaction with the gateway and, on success,
// snapshots it and completes the booking. Both writes are best effort: a
// confirmed payment is reported to the caller even when the store is down.
func (s *PaymentService) VerifyPayment(ctx context.Context, reference string) (*paystack.Transaction, error) {
	if reference == "" {
		return nil, &status.ValidationError{Msg: "Payment reference is required"}
	}

	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		monitoring.TrackPaymentVerify("failed")
		return nil, err
	}

	if tx.Status != "success" {
		monitoring.TrackPaymentVerify(tx.Status)
		return nil, &status.GatewayError{
			Op:  "verifyTransaction",
			Msg: fmt.Sprintf("payment not successful: %s", tx.Status),
		}
	}
	monitoring.TrackPaymentVerify("success")

	payment := &models.Payment{
		Reference:     tx.Reference,
		Status:        tx.Status,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Channel:       tx.Channel,
		CustomerEmail: tx.Customer.Email,
		PaidAt:        tx.PaidAt,
		Raw:           tx.Raw,
	}
	if err := s.store.SavePayment(ctx, payment); err != nil {
		log.Printf("verifyPayment: payment snapshot failed for %s: %v", reference, err)
	}

	if err := s.store.CompleteBooking(ctx, reference, tx.Raw); err != nil {
		log.Printf("verifyPayment: booking completion failed for %s: %v", reference, err)
	}

	return tx, nil
}

func (s *PaymentService) newBookingReference(eventID string) (string, error) {
	suffix, err := utils.DigitSuffix(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s_%d%s", s.cfg.BookingNamespace, eventID, time.Now().UnixMilli(), suffix), nil
}

func validateCreatePayment(req *CreatePaymentRequest) error {
	switch {
	case req.Email == "":
		return &status.ValidationError{Msg: "Email is required"}
	case req.FullName == "":
		return &status.ValidationError{Msg: "Full name is required"}
	case req.Phone == "":
		return &status.ValidationError{Msg: "Phone number is required"}
	case req.EventID == "":
		return &status.ValidationError{Msg: "Event ID is required"}
	case req.Amount <= 0:
		return &status.ValidationError{Msg: "Amount must be greater than zero"}
	}
	return nil
}

// toMinorUnits converts a major-unit amount to the gateway's minor units
// (naira to kobo).
func toMinorUnits(major int64) int64 {
	return decimal.NewFromInt(major).Mul(decimal.NewFromInt(100)).IntPart()
}
