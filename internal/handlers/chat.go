package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	URL   string `json:"url,omitempty"`
}

// ChatHandler is the stub voice-assistant intent matcher. Intents are
// fixed substrings; anything else gets the fallback reply.
func ChatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		query := strings.ToLower(req.Query)

		switch {
		case strings.Contains(query, "play music"):
			writeJSON(w, chatResponse{
				Reply: "Okay, playing music on YouTube.",
				URL:   "https://www.youtube.com/results?search_query=top+uplifting+songs",
			})
		case strings.Contains(query, "schedule meeting"), strings.Contains(query, "calendar"):
			writeJSON(w, chatResponse{Reply: "Okay, meeting scheduled in your calendar."})
		default:
			writeJSON(w, chatResponse{Reply: "Sorry, I didn't understand. Try saying play music or schedule meeting."})
		}
	}
}
