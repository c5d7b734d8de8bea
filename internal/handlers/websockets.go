package handlers

import (
	"net/http"
	"time"

	"faceserver/internal/logger"
	hub "faceserver/internal/websocket"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler upgrades a monitoring viewer connection and keeps
// it registered with the hub until it drops.
func ViewWebsocketHandler(hubService *hub.HubService, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		defer connection.Close()

		hubService.Register(connection)
		defer hubService.Unregister(connection)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				log.Info("Viewer disconnected: %v", err)
				break
			}
		}
	}
}
