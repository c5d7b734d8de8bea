package handlers

import (
	"errors"
	"net/http"

	"faceserver/internal/logger"
	"faceserver/internal/session"
)

// LoginHandler checks the submitted credentials and, on success, rotates
// the account's session token and hands the new marker to this client.
// Any session previously active on another client becomes stale.
func LoginHandler(sessions *session.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		cred, token, err := sessions.Login(username, password)
		if err != nil {
			if errors.Is(err, session.ErrInvalidCredentials) {
				http.Error(w, "Invalid credentials", http.StatusUnauthorized)
				return
			}
			log.Error("Login failed for %s: %v", username, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		SetSessionCookies(w, cred.ID, token)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
