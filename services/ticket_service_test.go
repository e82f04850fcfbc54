package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wknd-backend/internal/status"
	"wknd-backend/models"
)

type MockTicketStore struct {
	mock.Mock
	mu    sync.Mutex
	saved []models.Ticket
}

func (m *MockTicketStore) SaveTicket(ctx context.Context, t *models.Ticket) error {
	m.mu.Lock()
	m.saved = append(m.saved, *t)
	m.mu.Unlock()

	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockTicketMailer struct {
	mock.Mock
	mu    sync.Mutex
	sends int
}

func (m *MockTicketMailer) SendTicket(ticket *models.Ticket, qrPNG []byte) error {
	m.mu.Lock()
	m.sends++
	m.mu.Unlock()

	args := m.Called(ticket, qrPNG)
	return args.Error(0)
}

func validIssueRequest() *IssueTicketRequest {
	return &IssueTicketRequest{
		Email:            "ada@example.com",
		FullName:         "Ada Obi",
		EventID:          "weekend2026",
		PaymentReference: "234wknd_weekend2026_17001",
	}
}

func TestTicketService_Issue_Success(t *testing.T) {
	store := new(MockTicketStore)
	mailer := new(MockTicketMailer)
	svc := NewTicketService(store, mailer, testConfig())

	store.On("SaveTicket", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendTicket", mock.MatchedBy(func(tk *models.Ticket) bool {
		return tk.Email == "ada@example.com" && tk.PaymentReference == "234wknd_weekend2026_17001"
	}), mock.Anything).Return(nil)

	result, err := svc.Issue(context.Background(), validIssueRequest())

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^234WKND-weekend2026-\d+$`), result.TicketID)
	assert.True(t, result.Persisted)
	assert.True(t, result.Notified)
	assert.Equal(t, 1, mailer.sends)
}

func TestTicketService_Issue_QRPayloadIsNonEmptyPNG(t *testing.T) {
	store := new(MockTicketStore)
	mailer := new(MockTicketMailer)
	svc := NewTicketService(store, mailer, testConfig())

	var qr []byte
	store.On("SaveTicket", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendTicket", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		qr = args.Get(1).([]byte)
	}).Return(nil)

	_, err := svc.Issue(context.Background(), validIssueRequest())

	require.NoError(t, err)
	require.NotEmpty(t, qr)
	assert.Equal(t, []byte("\x89PNG"), qr[:4])
}

func TestTicketService_Issue_Validation(t *testing.T) {
	svc := NewTicketService(new(MockTicketStore), new(MockTicketMailer), testConfig())

	cases := []struct {
		name   string
		mutate func(*IssueTicketRequest)
	}{
		{"missing email", func(r *IssueTicketRequest) { r.Email = "" }},
		{"missing full name", func(r *IssueTicketRequest) { r.FullName = "" }},
		{"missing event id", func(r *IssueTicketRequest) { r.EventID = "" }},
		{"missing payment reference", func(r *IssueTicketRequest) { r.PaymentReference = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validIssueRequest()
			tc.mutate(req)

			_, err := svc.Issue(context.Background(), req)

			var vErr *status.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestTicketService_Issue_EmailFailureIsFatal(t *testing.T) {
	store := new(MockTicketStore)
	mailer := new(MockTicketMailer)
	svc := NewTicketService(store, mailer, testConfig())

	store.On("SaveTicket", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendTicket", mock.Anything, mock.Anything).
		Return(&status.NotificationError{Err: errors.New("smtp auth failed")})

	result, err := svc.Issue(context.Background(), validIssueRequest())

	var nErr *status.NotificationError
	require.ErrorAs(t, err, &nErr)
	// the ticket was stored before the send failed
	require.NotNil(t, result)
	assert.True(t, result.Persisted)
	assert.False(t, result.Notified)
}

func TestTicketService_Issue_StoreFailureIsNotFatal(t *testing.T) {
	store := new(MockTicketStore)
	mailer := new(MockTicketMailer)
	svc := NewTicketService(store, mailer, testConfig())

	store.On("SaveTicket", mock.Anything, mock.Anything).
		Return(&status.PersistenceError{Op: "saveTicket", Err: errors.New("db down")})
	mailer.On("SendTicket", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Issue(context.Background(), validIssueRequest())

	require.NoError(t, err)
	assert.False(t, result.Persisted)
	assert.True(t, result.Notified)
}

func TestTicketService_Issue_DuplicateCallsCreateDistinctTickets(t *testing.T) {
	store := new(MockTicketStore)
	mailer := new(MockTicketMailer)
	svc := NewTicketService(store, mailer, testConfig())

	store.On("SaveTicket", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendTicket", mock.Anything, mock.Anything).Return(nil)

	var wg sync.WaitGroup
	ids := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.Issue(context.Background(), validIssueRequest())
			if assert.NoError(t, err) {
				ids[i] = result.TicketID
			}
		}(i)
	}
	wg.Wait()

	assert.NotEqual(t, ids[0], ids[1])
	assert.Len(t, store.saved, 2)
	assert.Equal(t, 2, mailer.sends)
}
