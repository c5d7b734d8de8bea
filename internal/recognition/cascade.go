package recognition

import (
	"faceserver/internal/logger"
)

// trackerGate is the minimum face-tracker confidence required before the
// emotion model is run. The comparison is strictly greater-than.
const trackerGate = 0.5

// EmotionResult is the tagged outcome of the emotion cascade for one face
// region. When Confident is false, Scores is all zeros and Label is empty.
type EmotionResult struct {
	Confident bool
	Scores    []float64
	Label     string
}

// Cascade runs the two-stage emotion classification: a cheap face-tracker
// confidence check first, the emotion model only when the gate passes.
type Cascade struct {
	logger *logger.Logger
}

// NewCascade creates a Cascade.
func NewCascade(log *logger.Logger) *Cascade {
	return &Cascade{logger: log}
}

// Classify scores one face region. Any model failure is logged and
// degrades to a not-confident result so a single bad face never takes
// down the rest of the frame.
func (c *Cascade) Classify(f Frame, r Region) EmotionResult {
	notConfident := EmotionResult{Scores: make([]float64, len(EmotionLabels))}

	confidence, err := f.TrackerConfidence(r)
	if err != nil {
		c.logger.Warning("Face tracker failed for region %+v: %v", r, err)
		return notConfident
	}
	if confidence <= trackerGate {
		return notConfident
	}

	scores, err := f.EmotionScores(r)
	if err != nil {
		c.logger.Warning("Emotion model failed for region %+v: %v", r, err)
		return notConfident
	}
	if len(scores) != len(EmotionLabels) {
		c.logger.Warning("Emotion model returned %d scores, want %d", len(scores), len(EmotionLabels))
		return notConfident
	}

	return EmotionResult{
		Confident: true,
		Scores:    scores,
		Label:     EmotionLabels[argmax(scores)],
	}
}

func argmax(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}
