package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"faceserver/internal/config"
	"faceserver/internal/handlers"
	"faceserver/internal/logger"
	"faceserver/internal/middleware"
	"faceserver/internal/recognition"
	"faceserver/internal/repository"
	"faceserver/internal/session"
	"faceserver/internal/websocket"
)

// dynamicHTMLHandler serves /path as <staticDir>/path.html if the file
// exists; otherwise 404.
func dynamicHTMLHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" {
			path = "/face"
		}

		filePath := filepath.Join(staticDir, path+".html")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// SetupRoutes registers HTTP routes, static file serving and API
// endpoints, and wraps the mux with the session middleware.
func SetupRoutes(cfg *config.Config, log *logger.Logger,
	sessions *session.Manager,
	decoder recognition.FrameDecoder, pipeline *recognition.Pipeline,
	logs repository.RecognitionLogRepository, hub *websocket.HubService) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDirectory))))

	// API endpoints
	mux.HandleFunc("/api/recognize", handlers.RecognizeHandler(decoder, pipeline, logs, hub, log))
	mux.HandleFunc("/api/logs", handlers.RecognitionLogsHandler(logs, cfg.RecentLogLimit, log))
	mux.HandleFunc("/api/session/status", handlers.SessionStatusHandler(sessions, log))
	mux.HandleFunc("/api/chat", handlers.ChatHandler())
	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(hub, log))

	// Auth endpoints
	mux.HandleFunc("/auth/login", handlers.LoginHandler(sessions, log))
	mux.HandleFunc("/auth/logout", handlers.LogoutHandler)

	// Automatic HTML handler mapping, e.g. /login -> static/login.html
	mux.HandleFunc("/", dynamicHTMLHandler(cfg.StaticDirectory))

	// Apply middleware
	return middleware.Auth(sessions, log)(mux)
}
