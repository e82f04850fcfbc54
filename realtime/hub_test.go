package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wknd-backend/models"
)

type fakeChatStore struct {
	mu        sync.Mutex
	messages  []models.Message
	inquiries []models.SponsorInquiry
	saveErr   error
}

func (f *fakeChatStore) SaveMessage(ctx context.Context, m *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	m.ID = "rec_" + m.Text
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeChatStore) SaveInquiry(ctx context.Context, inq *models.SponsorInquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	inq.ID = "rec_" + inq.CompanyName
	f.inquiries = append(f.inquiries, *inq)
	return nil
}

func startHub(t *testing.T, ackDelay time.Duration) (*Hub, *fakeChatStore, context.CancelFunc) {
	t.Helper()

	store := &fakeChatStore{}
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(ctx, store, ackDelay)

	go hub.Run()
	t.Cleanup(cancel)

	return hub, store, cancel
}

func connect(hub *Hub) *Client {
	client := &Client{hub: hub, send: make(chan []byte, 64)}
	hub.register <- client
	return client
}

func recvEnvelope(t *testing.T, c *Client, timeout time.Duration) (*Envelope, bool) {
	t.Helper()

	select {
	case payload, ok := <-c.send:
		if !ok {
			return nil, false
		}
		var env Envelope
		require.NoError(t, json.Unmarshal(payload, &env))
		return &env, true
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for envelope")
		return nil, false
	}
}

func TestHub_ChatMessageIsBroadcastToAllClients(t *testing.T) {
	hub, store, _ := startHub(t, 50*time.Millisecond)

	a := connect(hub)
	b := connect(hub)

	hub.handleChatMessage(json.RawMessage(`{"text":"hello","sender":"visitor","roomId":"room-1"}`))

	for _, c := range []*Client{a, b} {
		env, ok := recvEnvelope(t, c, time.Second)
		require.True(t, ok)
		assert.Equal(t, "message", env.Event)

		var msg models.Message
		require.NoError(t, json.Unmarshal(env.Data, &msg))
		assert.Equal(t, "hello", msg.Text)
		assert.NotEmpty(t, msg.ID)
		assert.False(t, msg.Timestamp.IsZero())
	}

	store.mu.Lock()
	assert.Len(t, store.messages, 1)
	store.mu.Unlock()
}

func TestHub_AdminAckArrivesAfterConfiguredDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	hub, _, _ := startHub(t, delay)

	c := connect(hub)

	start := time.Now()
	hub.handleChatMessage(json.RawMessage(`{"text":"hello","sender":"visitor","roomId":"room-1"}`))

	// first the visitor's own message
	env, ok := recvEnvelope(t, c, time.Second)
	require.True(t, ok)
	assert.Equal(t, "message", env.Event)

	// then the canned reply, no sooner than the delay
	env, ok = recvEnvelope(t, c, time.Second)
	require.True(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), delay)

	var ack models.Message
	require.NoError(t, json.Unmarshal(env.Data, &ack))
	assert.Equal(t, "admin", ack.Sender)
	assert.Equal(t, adminAckText, ack.Text)
	assert.Equal(t, "room-1", ack.RoomID)
}

func TestHub_PendingAckIsDroppedOnShutdown(t *testing.T) {
	hub, _, cancel := startHub(t, 80*time.Millisecond)

	c := connect(hub)

	hub.handleChatMessage(json.RawMessage(`{"text":"hello","sender":"visitor"}`))

	env, ok := recvEnvelope(t, c, time.Second)
	require.True(t, ok)
	assert.Equal(t, "message", env.Event)

	cancel()

	// the delayed ack never arrives; the client channel is closed instead
	deadline := time.After(300 * time.Millisecond)
	for {
		select {
		case payload, open := <-c.send:
			if !open {
				return
			}
			var got Envelope
			require.NoError(t, json.Unmarshal(payload, &got))
			var msg models.Message
			require.NoError(t, json.Unmarshal(got.Data, &msg))
			assert.NotEqual(t, "admin", msg.Sender)
		case <-deadline:
			t.Fatal("client channel was not closed on shutdown")
		}
	}
}

func TestHub_SponsorInquiryGetsPrivateAck(t *testing.T) {
	hub, store, _ := startHub(t, 50*time.Millisecond)

	submitter := connect(hub)
	bystander := connect(hub)

	hub.handleSponsorInquiry(submitter, json.RawMessage(
		`{"companyName":"Acme","contactPerson":"Ada Obi","email":"ada@example.com","message":"interested"}`,
	))

	// submitter gets the private ack first
	env, ok := recvEnvelope(t, submitter, time.Second)
	require.True(t, ok)
	assert.Equal(t, "inquiry-received", env.Event)
	assert.Contains(t, string(env.Data), "Your sponsorship inquiry has been received!")

	// both see the broadcast
	env, ok = recvEnvelope(t, submitter, time.Second)
	require.True(t, ok)
	assert.Equal(t, "new-sponsor-inquiry", env.Event)

	env, ok = recvEnvelope(t, bystander, time.Second)
	require.True(t, ok)
	assert.Equal(t, "new-sponsor-inquiry", env.Event)

	store.mu.Lock()
	require.Len(t, store.inquiries, 1)
	assert.Equal(t, models.InquiryStatusPending, store.inquiries[0].Status)
	store.mu.Unlock()
}

func TestHub_InvalidInquiryGetsErrorAckOnly(t *testing.T) {
	hub, store, _ := startHub(t, 50*time.Millisecond)

	submitter := connect(hub)

	hub.handleSponsorInquiry(submitter, json.RawMessage(`{"companyName":"Acme"}`))

	env, ok := recvEnvelope(t, submitter, time.Second)
	require.True(t, ok)
	assert.Equal(t, "inquiry-error", env.Event)

	store.mu.Lock()
	assert.Empty(t, store.inquiries)
	store.mu.Unlock()
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	hub, _, _ := startHub(t, 50*time.Millisecond)

	c := connect(hub)
	hub.unregister <- c

	select {
	case _, open := <-c.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel was not closed")
	}
}

func TestHub_InboundInquiryAfterShutdownDoesNotPanic(t *testing.T) {
	hub, _, cancel := startHub(t, 50*time.Millisecond)

	c := connect(hub)
	cancel()

	// wait until the shutdown path has closed the client
	select {
	case _, open := <-c.send:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel was not closed on shutdown")
	}

	// the reader may still deliver events after the hub closed the client
	hub.handleSponsorInquiry(c, json.RawMessage(
		`{"companyName":"Acme","contactPerson":"Ada Obi","email":"ada@example.com","message":"interested"}`,
	))
	hub.handleChatMessage(json.RawMessage(`{"text":"hello","sender":"visitor"}`))
}

func TestHub_DroppedSlowClientStillAcceptsInboundEvents(t *testing.T) {
	hub, _, _ := startHub(t, 50*time.Millisecond)

	// one-slot buffer so the second broadcast overflows and drops the client
	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- c

	hub.Broadcast("message", &models.Message{Text: "first"})
	hub.Broadcast("message", &models.Message{Text: "second"})

	// drain until the hub has closed the channel
	deadline := time.After(time.Second)
	for open := true; open; {
		select {
		case _, open = <-c.send:
		case <-deadline:
			t.Fatal("slow client was not dropped")
		}
	}

	// a late inbound event from the dropped client's reader must not panic
	hub.handleSponsorInquiry(c, json.RawMessage(
		`{"companyName":"Acme","contactPerson":"Ada Obi","email":"ada@example.com","message":"interested"}`,
	))
}

func TestHub_ConcurrentBroadcastsDuringStartup(t *testing.T) {
	hub, _, _ := startHub(t, time.Minute)

	c := connect(hub)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast("message", &models.Message{Text: "hello"})
		}()
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		env, ok := recvEnvelope(t, c, time.Second)
		require.True(t, ok)
		assert.Equal(t, "message", env.Event)
	}
}

func TestHub_MessageSaveFailureStillBroadcasts(t *testing.T) {
	hub, store, _ := startHub(t, 50*time.Millisecond)
	store.saveErr = context.DeadlineExceeded

	c := connect(hub)
	hub.handleChatMessage(json.RawMessage(`{"text":"hello","sender":"visitor"}`))

	env, ok := recvEnvelope(t, c, time.Second)
	require.True(t, ok)
	assert.Equal(t, "message", env.Event)

	// a fallback id is assigned when the store could not provide one
	var msg models.Message
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.NotEmpty(t, msg.ID)
}
