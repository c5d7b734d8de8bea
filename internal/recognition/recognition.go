// Package recognition implements the identity-resolution pipeline: gallery
// lookup, nearest-encoding matching and the confidence-gated emotion
// cascade. All image and model access goes through the Frame and
// FrameDecoder interfaces so the pipeline itself stays free of OpenCV.
package recognition

// EmotionLabels is the fixed emotion label set, in model output order.
var EmotionLabels = []string{"Angry", "Disgust", "Fear", "Happy", "Sad", "Surprise", "Neutral"}

// Region is a detected face box inside a single frame, in pixel offsets.
type Region struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Frame is a decoded camera frame. Implementations own the underlying
// pixel buffers; Close releases them.
type Frame interface {
	// DetectFaces returns every detected face region, in detection order.
	DetectFaces() ([]Region, error)

	// Encoding extracts the identity encoding for a face region.
	Encoding(r Region) ([]float32, error)

	// TrackerConfidence scores the color crop of a region with the binary
	// face-tracker model.
	TrackerConfidence(r Region) (float64, error)

	// EmotionScores scores the grayscale crop of a region with the emotion
	// model. The result has one value per entry of EmotionLabels.
	EmotionScores(r Region) ([]float64, error)

	Close()
}

// FrameDecoder turns a raw image payload into a Frame.
type FrameDecoder interface {
	DecodeFrame(data []byte) (Frame, error)
}

// FileEncoder extracts the first face encoding from an image file on disk.
// Used only while building the gallery at startup.
type FileEncoder interface {
	EncodeFile(path string) ([]float32, error)
}
