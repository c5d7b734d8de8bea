package recognition

import (
	"errors"
	"testing"

	"faceserver/internal/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(t.TempDir())
}

// fakeFrame is a scriptable Frame for pipeline and cascade tests.
type fakeFrame struct {
	regions    []Region
	detectErr  error
	encodings  map[Region][]float32
	encodeErr  map[Region]error
	confidence map[Region]float64
	confErr    map[Region]error
	scores     map[Region][]float64
	scoresErr  map[Region]error
	closed     bool
}

func (f *fakeFrame) DetectFaces() ([]Region, error) {
	return f.regions, f.detectErr
}

func (f *fakeFrame) Encoding(r Region) ([]float32, error) {
	if err := f.encodeErr[r]; err != nil {
		return nil, err
	}
	if enc, ok := f.encodings[r]; ok {
		return enc, nil
	}
	return nil, errors.New("no encoding scripted")
}

func (f *fakeFrame) TrackerConfidence(r Region) (float64, error) {
	if err := f.confErr[r]; err != nil {
		return 0, err
	}
	return f.confidence[r], nil
}

func (f *fakeFrame) EmotionScores(r Region) ([]float64, error) {
	if err := f.scoresErr[r]; err != nil {
		return nil, err
	}
	if scores, ok := f.scores[r]; ok {
		return scores, nil
	}
	return nil, errors.New("no scores scripted")
}

func (f *fakeFrame) Close() {
	f.closed = true
}

// happyScores returns a 7-class vector whose arg-max is "Happy".
func happyScores() []float64 {
	return []float64{0.01, 0.01, 0.02, 0.9, 0.02, 0.02, 0.02}
}
