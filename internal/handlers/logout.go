package handlers

import (
	"net/http"
)

// LogoutHandler clears the client's local session marker and redirects to
// the login page. It deliberately does not clear the stored token, so a
// session legitimately active on another client keeps working.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookies(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
