// Package vision wraps all OpenCV access: frame decoding, Haar cascade
// face detection and DNN inference for the three pretrained model
// artifacts. Everything above it works with the interfaces declared in
// the recognition package.
package vision

import (
	"fmt"
	"image"
	"os"
	"sync"

	"faceserver/internal/config"
	"faceserver/internal/logger"
	"faceserver/internal/recognition"

	"gocv.io/x/gocv"
)

const (
	encoderInputSize = 96  // face encoder input square
	trackerInputSize = 120 // face tracker input square
	emotionInputSize = 48  // emotion model input square
	encodingLength   = 128
)

// Engine loads the model artifacts once and serves every request from
// them. The networks are never mutated after initialization; inference
// itself is serialized per net because OpenCV nets do not support
// concurrent Forward calls.
type Engine struct {
	cascade gocv.CascadeClassifier
	encoder gocv.Net
	tracker gocv.Net
	emotion gocv.Net

	cascadeMu sync.Mutex
	encoderMu sync.Mutex
	trackerMu sync.Mutex
	emotionMu sync.Mutex

	logger *logger.Logger
}

// NewEngine loads the cascade and the three networks. Any load failure is
// returned as an error; there is no fallback inference path, so the
// caller is expected to abort startup.
func NewEngine(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	e := &Engine{logger: log}

	if _, err := os.Stat(cfg.CascadePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("cascade file not found: %s", cfg.CascadePath)
	}
	e.cascade = gocv.NewCascadeClassifier()
	if !e.cascade.Load(cfg.CascadePath) {
		return nil, fmt.Errorf("failed to load face cascade: %s", cfg.CascadePath)
	}

	var err error
	if e.encoder, err = loadNet(cfg.EncoderModelPath); err != nil {
		return nil, err
	}
	if e.tracker, err = loadNet(cfg.TrackerModelPath); err != nil {
		return nil, err
	}
	if e.emotion, err = loadNet(cfg.EmotionModelPath); err != nil {
		return nil, err
	}

	e.logger.Info("Vision engine initialized (cascade + 3 networks)")
	return e, nil
}

func loadNet(modelPath string) (gocv.Net, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return gocv.Net{}, fmt.Errorf("model file not found: %s", modelPath)
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return gocv.Net{}, fmt.Errorf("failed to load network: %s", modelPath)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		return gocv.Net{}, fmt.Errorf("failed to set network backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		return gocv.Net{}, fmt.Errorf("failed to set network target: %w", err)
	}

	return net, nil
}

// Close releases the cascade and networks.
func (e *Engine) Close() {
	e.cascade.Close()
	e.encoder.Close()
	e.tracker.Close()
	e.emotion.Close()
}

// DecodeFrame decodes a raw image payload into a Frame holding the color
// and grayscale representations used downstream.
func (e *Engine) DecodeFrame(data []byte) (recognition.Frame, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("decoded image is empty")
	}

	gray := gocv.NewMat()
	if err := gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray); err != nil {
		mat.Close()
		gray.Close()
		return nil, fmt.Errorf("failed to convert image to grayscale: %w", err)
	}

	return &frame{engine: e, color: mat, gray: gray}, nil
}

// EncodeFile decodes an image file, detects the first face in it and
// returns that face's encoding. Used to build the gallery at startup.
func (e *Engine) EncodeFile(path string) ([]float32, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		return nil, fmt.Errorf("failed to read image: %s", path)
	}
	defer mat.Close()

	regions := e.detectFaces(mat)
	if len(regions) == 0 {
		return nil, fmt.Errorf("no face found in %s", path)
	}

	return e.encodeRegion(mat, regions[0])
}

// detectFaces runs the Haar cascade over a color frame.
func (e *Engine) detectFaces(mat gocv.Mat) []recognition.Region {
	e.cascadeMu.Lock()
	rects := e.cascade.DetectMultiScale(mat)
	e.cascadeMu.Unlock()

	regions := make([]recognition.Region, 0, len(rects))
	for _, r := range rects {
		regions = append(regions, recognition.Region{
			Top:    r.Min.Y,
			Right:  r.Max.X,
			Bottom: r.Max.Y,
			Left:   r.Min.X,
		})
	}
	return regions
}

// encodeRegion crops the face and runs the encoder network on a [0,1]
// normalized square crop.
func (e *Engine) encodeRegion(mat gocv.Mat, region recognition.Region) ([]float32, error) {
	crop, err := cropRegion(mat, region)
	if err != nil {
		return nil, err
	}
	defer crop.Close()

	blob := gocv.BlobFromImage(crop, 1.0/255.0, image.Pt(encoderInputSize, encoderInputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	e.encoderMu.Lock()
	defer e.encoderMu.Unlock()

	e.encoder.SetInput(blob, "")
	output := e.encoder.Forward("")
	defer output.Close()

	if output.Total() < encodingLength {
		return nil, fmt.Errorf("encoder returned %d values, want %d", output.Total(), encodingLength)
	}

	encoding := make([]float32, encodingLength)
	flat := output.Reshape(1, 1)
	defer flat.Close()
	for i := 0; i < encodingLength; i++ {
		encoding[i] = flat.GetFloatAt(0, i)
	}
	return encoding, nil
}

// trackerConfidence scores the color crop with the binary face-tracker
// network, resized to its fixed input square and normalized to [0,1].
func (e *Engine) trackerConfidence(mat gocv.Mat, region recognition.Region) (float64, error) {
	crop, err := cropRegion(mat, region)
	if err != nil {
		return 0, err
	}
	defer crop.Close()

	blob := gocv.BlobFromImage(crop, 1.0/255.0, image.Pt(trackerInputSize, trackerInputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	e.trackerMu.Lock()
	defer e.trackerMu.Unlock()

	e.tracker.SetInput(blob, "")
	output := e.tracker.Forward("")
	defer output.Close()

	if output.Total() < 1 {
		return 0, fmt.Errorf("tracker returned no output")
	}

	flat := output.Reshape(1, 1)
	defer flat.Close()
	return float64(flat.GetFloatAt(0, 0)), nil
}

// emotionScores scores the grayscale crop with the emotion network. The
// blob carries a single channel, matching the model input shape.
func (e *Engine) emotionScores(gray gocv.Mat, region recognition.Region) ([]float64, error) {
	crop, err := cropRegion(gray, region)
	if err != nil {
		return nil, err
	}
	defer crop.Close()

	blob := gocv.BlobFromImage(crop, 1.0/255.0, image.Pt(emotionInputSize, emotionInputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	e.emotionMu.Lock()
	defer e.emotionMu.Unlock()

	e.emotion.SetInput(blob, "")
	output := e.emotion.Forward("")
	defer output.Close()

	count := output.Total()
	if count != len(recognition.EmotionLabels) {
		return nil, fmt.Errorf("emotion model returned %d values, want %d", count, len(recognition.EmotionLabels))
	}

	scores := make([]float64, count)
	flat := output.Reshape(1, 1)
	defer flat.Close()
	for i := 0; i < count; i++ {
		scores[i] = float64(flat.GetFloatAt(0, i))
	}
	return scores, nil
}

// cropRegion returns a cloned crop of the region, clamped to the frame
// bounds. A region that collapses to nothing after clamping is an error.
func cropRegion(mat gocv.Mat, region recognition.Region) (gocv.Mat, error) {
	rect := image.Rect(region.Left, region.Top, region.Right, region.Bottom)
	rect = rect.Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	if rect.Empty() {
		return gocv.Mat{}, fmt.Errorf("region %+v is outside the frame", region)
	}

	view := mat.Region(rect)
	defer view.Close()
	return view.Clone(), nil
}
