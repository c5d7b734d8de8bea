package websocket

import (
	"encoding/json"
	"sync"

	"faceserver/internal/logger"
	"faceserver/internal/model"

	"github.com/gorilla/websocket"
)

// HubService fans recognition log entries out to connected monitoring
// viewers.
type HubService struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
	logger     *logger.Logger
}

// NewHubService creates a HubService.
func NewHubService(log *logger.Logger) *HubService {
	return &HubService{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     log,
	}
}

// Run processes register/unregister/broadcast events. Meant to run in its
// own goroutine for the lifetime of the server.
func (h *HubService) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.logger.Info("Viewer connected. Total: %d", h.GetClientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mutex.Unlock()
			h.logger.Info("Viewer disconnected. Total: %d", h.GetClientCount())

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Error("Error sending message to viewer: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register adds a viewer connection to the hub.
func (h *HubService) Register(client *websocket.Conn) {
	h.register <- client
}

// Unregister removes a viewer connection from the hub.
func (h *HubService) Unregister(client *websocket.Conn) {
	h.unregister <- client
}

// BroadcastEntry sends a recognition log entry to every connected viewer.
func (h *HubService) BroadcastEntry(entry model.RecognitionEntry) {
	message, err := json.Marshal(entry)
	if err != nil {
		h.logger.Error("Failed to marshal recognition entry: %v", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warning("Viewer broadcast queue full, dropping entry")
	}
}

// GetClientCount returns the number of connected viewers.
func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
