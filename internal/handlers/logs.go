package handlers

import (
	"net/http"
	"time"

	"faceserver/internal/logger"
	"faceserver/internal/repository"
)

type logEntry struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}

type logsResponse struct {
	Logs []logEntry `json:"logs"`
}

// RecognitionLogsHandler returns the most recent recognition log entries,
// newest first.
func RecognitionLogsHandler(logs repository.RecognitionLogRepository, limit int, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := logs.GetRecent(limit)
		if err != nil {
			log.Error("Failed to query recognition log: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to read recognition log")
			return
		}

		response := logsResponse{Logs: make([]logEntry, 0, len(entries))}
		for _, entry := range entries {
			response.Logs = append(response.Logs, logEntry{
				Name:      entry.Name,
				Timestamp: entry.Timestamp.UTC().Format(time.RFC3339),
			})
		}

		writeJSON(w, response)
	}
}
