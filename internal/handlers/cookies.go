package handlers

import (
	"net/http"
	"strconv"
)

// Cookie names for the client session marker. UserCookie identifies the
// account, SessionCookie carries the opaque marker compared against the
// stored token.
const (
	UserCookie    = "uid"
	SessionCookie = "session_token"
)

// SetSessionCookies stores the account id and session marker on the client.
func SetSessionCookies(w http.ResponseWriter, userID int64, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     UserCookie,
		Value:    strconv.FormatInt(userID, 10),
		Path:     "/",
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearSessionCookies removes the client's local session marker. The
// stored token is left untouched, so a session active elsewhere survives.
func ClearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: UserCookie, Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
}

// SessionFromRequest extracts the account id and marker from the request
// cookies. ok is false when either cookie is missing or malformed.
func SessionFromRequest(r *http.Request) (userID int64, marker string, ok bool) {
	userCookie, err := r.Cookie(UserCookie)
	if err != nil {
		return 0, "", false
	}
	userID, err = strconv.ParseInt(userCookie.Value, 10, 64)
	if err != nil {
		return 0, "", false
	}

	sessionCookie, err := r.Cookie(SessionCookie)
	if err != nil || sessionCookie.Value == "" {
		return 0, "", false
	}

	return userID, sessionCookie.Value, true
}
