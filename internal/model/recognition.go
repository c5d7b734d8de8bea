package model

import "time"

// RecognitionEntry is one row of the append-only recognition log.
// Name is the composite "{person} - {emotion}" string produced by the
// pipeline, Timestamp is always UTC.
type RecognitionEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}
