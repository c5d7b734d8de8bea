package model

// Enrollment links a display name with the reference images used to build
// the face gallery at startup.
type Enrollment struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	ImagePaths []string `json:"image_paths"`
}
