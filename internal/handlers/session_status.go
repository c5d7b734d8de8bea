package handlers

import (
	"net/http"

	"faceserver/internal/logger"
	"faceserver/internal/session"
)

// SessionStatusHandler reports whether the client's marker still matches
// the account's stored session token. Pages poll this to notice a login
// from elsewhere.
func SessionStatusHandler(sessions *session.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "invalid"

		if userID, marker, ok := SessionFromRequest(r); ok {
			valid, err := sessions.Validate(userID, marker)
			if err != nil {
				log.Error("Session status check failed: %v", err)
			} else if valid {
				status = "valid"
			}
		}

		writeJSON(w, map[string]string{"status": status})
	}
}
