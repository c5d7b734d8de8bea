package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"faceserver/internal/handlers"
	"faceserver/internal/logger"
	"faceserver/internal/session"
)

// Auth wraps the mux with the single-session check. Every protected
// request re-validates the client's marker against the stored token; a
// stale marker is detected here, on the stale client's next request, and
// answered with a forced logout.
func Auth(sessions *session.Manager, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Login page, the login action, the assistant stub and static
			// assets stay reachable without a session.
			if r.URL.Path == "/login" ||
				r.URL.Path == "/auth/login" ||
				r.URL.Path == "/api/chat" ||
				strings.HasPrefix(r.URL.Path, "/static/") ||
				strings.HasPrefix(r.URL.Path, "/css/") ||
				strings.HasPrefix(r.URL.Path, "/js/") {
				next.ServeHTTP(w, r)
				return
			}

			userID, marker, ok := handlers.SessionFromRequest(r)
			if ok {
				valid, err := sessions.Validate(userID, marker)
				if err != nil {
					log.Error("Session validation failed: %v", err)
					valid = false
				}
				if valid {
					next.ServeHTTP(w, r)
					return
				}
			}

			forceLogout(w, r)
		})
	}
}

// forceLogout clears the client's local marker and sends it back to the
// login page with the logged-in-elsewhere notice.
func forceLogout(w http.ResponseWriter, r *http.Request) {
	handlers.ClearSessionCookies(w)

	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Session expired. Logged in elsewhere."})
		return
	}

	http.Redirect(w, r, "/login?notice=logged-in-elsewhere", http.StatusSeeOther)
}
