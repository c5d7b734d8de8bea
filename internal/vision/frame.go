package vision

import (
	"faceserver/internal/recognition"

	"gocv.io/x/gocv"
)

// frame implements recognition.Frame over a decoded color mat and its
// grayscale counterpart.
type frame struct {
	engine *Engine
	color  gocv.Mat
	gray   gocv.Mat
}

func (f *frame) DetectFaces() ([]recognition.Region, error) {
	return f.engine.detectFaces(f.color), nil
}

func (f *frame) Encoding(r recognition.Region) ([]float32, error) {
	return f.engine.encodeRegion(f.color, r)
}

func (f *frame) TrackerConfidence(r recognition.Region) (float64, error) {
	return f.engine.trackerConfidence(f.color, r)
}

func (f *frame) EmotionScores(r recognition.Region) ([]float64, error) {
	return f.engine.emotionScores(f.gray, r)
}

func (f *frame) Close() {
	f.color.Close()
	f.gray.Close()
}
