package handlers

import (
	"log"

	"github.com/gorilla/websocket"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/realtime"
)

type WebsocketHandler struct {
	hub      *realtime.Hub
	upgrader *websocket.Upgrader
}

func NewWebsocketHandler(hub *realtime.Hub, upgrader *websocket.Upgrader) *WebsocketHandler {
	return &WebsocketHandler{hub: hub, upgrader: upgrader}
}

// Connect upgrades the request and registers the connection with the hub.
func (h *WebsocketHandler) Connect(e *core.RequestEvent) error {
	if err := realtime.ServeWS(h.hub, h.upgrader, e.Response, e.Request); err != nil {
		// Upgrade already wrote the error response.
		log.Printf("websocket: upgrade failed: %v", err)
	}
	return nil
}
