package sqlite

import (
	"fmt"

	"faceserver/internal/model"
)

// RecognitionLogRepository implements repository.RecognitionLogRepository
// for SQLite. The log is append-only; retention is somebody else's job.
type RecognitionLogRepository struct {
	db *DB
}

// NewRecognitionLogRepository creates a new SQLite recognition log repository.
func NewRecognitionLogRepository(db *DB) *RecognitionLogRepository {
	return &RecognitionLogRepository{db: db}
}

// Insert appends a recognition entry.
func (r *RecognitionLogRepository) Insert(entry *model.RecognitionEntry) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO recognition_logs (name, timestamp) VALUES (?, ?)
	`, entry.Name, entry.Timestamp.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert recognition entry: %w", err)
	}

	return result.LastInsertId()
}

// GetRecent retrieves the most recent entries, newest first.
func (r *RecognitionLogRepository) GetRecent(limit int) ([]model.RecognitionEntry, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, name, timestamp FROM recognition_logs
		ORDER BY timestamp DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recognition entries: %w", err)
	}
	defer rows.Close()

	var entries []model.RecognitionEntry
	for rows.Next() {
		var entry model.RecognitionEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan recognition entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
