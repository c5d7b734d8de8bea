package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"faceserver/internal/logger"
	"faceserver/internal/model"
	"faceserver/internal/recognition"
	"faceserver/internal/repository"
	"faceserver/internal/websocket"
)

type recognizeRequest struct {
	Image string `json:"image"`
}

type recognizeResponse struct {
	Recognized []string  `json:"recognized"`
	Emotions   []float64 `json:"emotions"`
}

// RecognizeHandler accepts a single frame as a data-URI-style string,
// runs the recognition pipeline and appends one log entry per uniquely
// recognized name+emotion composite.
func RecognizeHandler(decoder recognition.FrameDecoder, pipeline *recognition.Pipeline,
	logs repository.RecognitionLogRepository, hub *websocket.HubService, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req recognizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
			writeError(w, http.StatusBadRequest, "No image data provided")
			return
		}

		// Payload looks like "data:image/jpeg;base64,<payload>"; only the
		// part after the first comma matters.
		payload := req.Image
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}

		imageBytes, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid base64 image data")
			return
		}

		frame, err := decoder.DecodeFrame(imageBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Could not decode image")
			return
		}
		defer frame.Close()

		result := pipeline.Process(frame)

		for _, name := range result.Recognized {
			entry := model.RecognitionEntry{Name: name, Timestamp: time.Now().UTC()}
			if _, err := logs.Insert(&entry); err != nil {
				log.Error("Failed to append recognition entry %q: %v", name, err)
				continue
			}
			hub.BroadcastEntry(entry)
		}

		writeJSON(w, recognizeResponse{
			Recognized: result.Recognized,
			Emotions:   result.Emotions,
		})
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
