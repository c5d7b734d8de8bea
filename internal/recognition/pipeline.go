package recognition

import (
	"fmt"

	"faceserver/internal/logger"
)

// Result is the outcome of processing one frame. Recognized holds the
// deduplicated "{name} - {emotion}" composites in first-seen order.
// Emotions is the score vector of the last region that passed the
// cascade; all zeros when none did. A single vector per frame is a
// deliberate simplification for the single-subject monitoring case.
type Result struct {
	Recognized []string
	Emotions   []float64
}

// Pipeline resolves identities and emotions for every face in a frame.
// It carries no per-frame state, so one Pipeline serves concurrent
// requests.
type Pipeline struct {
	gallery   *Gallery
	cascade   *Cascade
	threshold float64
	logger    *logger.Logger
}

// NewPipeline creates a Pipeline over an immutable gallery.
func NewPipeline(gallery *Gallery, threshold float64, log *logger.Logger) *Pipeline {
	return &Pipeline{
		gallery:   gallery,
		cascade:   NewCascade(log),
		threshold: threshold,
		logger:    log,
	}
}

// Process detects every face in the frame, matches each against the
// gallery and classifies the emotion of accepted matches. Regions that
// fail to encode, match or classify are dropped individually.
func (p *Pipeline) Process(f Frame) Result {
	result := Result{
		Recognized: []string{},
		Emotions:   make([]float64, len(EmotionLabels)),
	}

	regions, err := f.DetectFaces()
	if err != nil {
		p.logger.Error("Face detection failed: %v", err)
		return result
	}

	seen := make(map[string]struct{})

	for _, region := range regions {
		encoding, err := f.Encoding(region)
		if err != nil {
			p.logger.Warning("Face encoding failed for region %+v: %v", region, err)
			continue
		}

		match, ok := p.gallery.Match(encoding, p.threshold)
		if !ok {
			continue
		}

		emotion := p.cascade.Classify(f, region)
		if !emotion.Confident {
			continue
		}

		result.Emotions = emotion.Scores

		composite := fmt.Sprintf("%s - %s", match.Name, emotion.Label)
		if _, dup := seen[composite]; dup {
			continue
		}
		seen[composite] = struct{}{}
		result.Recognized = append(result.Recognized, composite)
	}

	return result
}
