package recognition

import (
	"faceserver/internal/logger"
	"faceserver/internal/model"
)

// GalleryEntry pairs a display name with one reference face encoding.
// Several entries may carry the same name when a person was enrolled with
// multiple reference images.
type GalleryEntry struct {
	Name     string
	Encoding []float32
}

// Gallery holds the face encodings of every enrolled person. It is built
// once at startup and never mutated afterwards, so concurrent reads need
// no locking. Enrolling a new person requires a restart.
type Gallery struct {
	entries []GalleryEntry
}

// NewGallery creates a gallery from pre-built entries.
func NewGallery(entries []GalleryEntry) *Gallery {
	return &Gallery{entries: entries}
}

// Size returns the number of gallery entries.
func (g *Gallery) Size() int {
	return len(g.entries)
}

// Names returns the display name of every entry, in load order.
func (g *Gallery) Names() []string {
	names := make([]string, 0, len(g.entries))
	for _, e := range g.entries {
		names = append(names, e.Name)
	}
	return names
}

// LoadGallery builds the gallery from enrollment records. Reference images
// that cannot be read or contain no detectable face are skipped with a
// warning; a bad image never aborts the load.
func LoadGallery(enc FileEncoder, records []model.Enrollment, log *logger.Logger) *Gallery {
	var entries []GalleryEntry

	for _, record := range records {
		if record.Name == "" || len(record.ImagePaths) == 0 {
			continue
		}
		for _, path := range record.ImagePaths {
			encoding, err := enc.EncodeFile(path)
			if err != nil {
				log.Warning("Skipping reference image %s for %s: %v", path, record.Name, err)
				continue
			}
			entries = append(entries, GalleryEntry{Name: record.Name, Encoding: encoding})
		}
	}

	log.Info("Loaded gallery with %d encodings for %d enrolled people", len(entries), len(records))
	return NewGallery(entries)
}
