package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection. The hub owns registration; the two
// pump goroutines own all reads and writes on the underlying connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// mu guards closed. The send channel is only closed under mu with
	// closed set, so enqueue can never hit a closed channel even while
	// the reader is still delivering inbound events.
	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// enqueue queues a payload for the write pump. It reports false when the
// client is closed or its buffer is full; it never blocks and never sends
// on a closed channel.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// shut closes the send channel exactly once. Safe to call multiple times
// and concurrently with enqueue.
func (c *Client) shut() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// sendEvent queues a private event for this client only. A full buffer or
// an already closed client drops the event rather than blocking the hub.
func (c *Client) sendEvent(event string, data any) {
	payload, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("realtime: send %s: %v", event, err)
		return
	}
	c.enqueue(payload)
}

func (c *Client) readPump() {
	defer func() {
		// after shutdown nobody drains unregister; the hub context
		// releases the goroutine instead
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read: %v", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("realtime: bad envelope: %v", err)
			continue
		}
		c.hub.handleEvent(c, &env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NewUpgrader builds the websocket upgrader, restricting origins to the
// configured client URL outside development.
func NewUpgrader(clientURL string, allowAll bool) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowAll {
				return true
			}
			return r.Header.Get("Origin") == clientURL
		},
	}
}

// ServeWS upgrades an HTTP request and attaches the connection to the hub.
func ServeWS(hub *Hub, upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 64),
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}
