// Package realtime is the in-process websocket channel for visitor chat
// and sponsorship inquiries. One hub fans events out to every connected
// client; private acknowledgements go back to the submitting client only.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"wknd-backend/models"
	"wknd-backend/monitoring"
)

// adminAckText is sent to the room a fixed delay after each chat message.
const adminAckText = "Thank you for your message! Our sponsorship team will review your inquiry and get back to you shortly."

// ChatStore persists what arrives over the channel.
type ChatStore interface {
	SaveMessage(ctx context.Context, m *models.Message) error
	SaveInquiry(ctx context.Context, inq *models.SponsorInquiry) error
}

// Envelope is the wire format in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	store    ChatStore
	ackDelay time.Duration

	// ctx is the hub's lifetime, fixed at construction so every goroutine
	// reads the same value. Pending delayed acks are dropped when it is
	// cancelled.
	ctx context.Context
}

func NewHub(ctx context.Context, store ChatStore, ackDelay time.Duration) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		store:      store,
		ackDelay:   ackDelay,
		ctx:        ctx,
	}
}

// Run owns the client set. It returns when the hub context is cancelled,
// closing every connected client.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			monitoring.TrackWebsocketConnect()

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.shut()
				monitoring.TrackWebsocketDisconnect()
			}

		case payload := <-h.broadcast:
			for client := range h.clients {
				if !client.enqueue(payload) {
					// slow client, drop it
					delete(h.clients, client)
					client.shut()
					monitoring.TrackWebsocketDisconnect()
				}
			}

		case <-h.ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				client.shut()
				monitoring.TrackWebsocketDisconnect()
			}
			return
		}
	}
}

// Broadcast fans an event out to every connected client.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("realtime: broadcast %s: %v", event, err)
		return
	}

	select {
	case h.broadcast <- payload:
		monitoring.TrackBroadcast(event)
	case <-h.ctx.Done():
	}
}

// handleEvent dispatches one inbound client envelope. Runs on the client's
// read goroutine.
func (h *Hub) handleEvent(client *Client, env *Envelope) {
	switch env.Event {
	case "message":
		h.handleChatMessage(env.Data)
	case "sponsor-inquiry":
		h.handleSponsorInquiry(client, env.Data)
	default:
		log.Printf("realtime: ignoring unknown event %q", env.Event)
	}
}

func (h *Hub) handleChatMessage(data json.RawMessage) {
	var msg models.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("realtime: bad message payload: %v", err)
		return
	}
	if msg.Text == "" {
		return
	}
	if msg.Sender == "" {
		msg.Sender = "visitor"
	}
	msg.Source = "chat"
	msg.Timestamp = time.Now().UTC()

	if err := h.store.SaveMessage(h.ctx, &msg); err != nil {
		log.Printf("realtime: message save failed: %v", err)
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	h.Broadcast("message", &msg)
	h.scheduleAdminAck(msg.RoomID)
}

// scheduleAdminAck broadcasts the canned support reply after the
// configured delay, unless the hub shuts down first.
func (h *Hub) scheduleAdminAck(roomID string) {
	timer := time.NewTimer(h.ackDelay)

	go func() {
		defer timer.Stop()
		select {
		case <-timer.C:
			h.Broadcast("message", &models.Message{
				ID:        uuid.NewString(),
				Text:      adminAckText,
				Sender:    "admin",
				RoomID:    roomID,
				Source:    "chat",
				Timestamp: time.Now().UTC(),
			})
		case <-h.ctx.Done():
		}
	}()
}

func (h *Hub) handleSponsorInquiry(client *Client, data json.RawMessage) {
	var inq models.SponsorInquiry
	if err := json.Unmarshal(data, &inq); err != nil {
		log.Printf("realtime: bad inquiry payload: %v", err)
		return
	}
	if inq.CompanyName == "" || inq.ContactPerson == "" || inq.Email == "" || inq.Message == "" {
		client.sendEvent("inquiry-error", map[string]any{
			"success": false,
			"message": "Company name, contact person, email and message are required",
		})
		return
	}
	inq.Status = models.InquiryStatusPending

	if err := h.store.SaveInquiry(h.ctx, &inq); err != nil {
		log.Printf("realtime: inquiry save failed: %v", err)
	}

	// private ack to the submitter only
	client.sendEvent("inquiry-received", map[string]any{
		"success": true,
		"message": "Your sponsorship inquiry has been received!",
	})

	h.Broadcast("new-sponsor-inquiry", &inq)
}

func marshalEnvelope(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Envelope{Event: event, Data: raw})
}
