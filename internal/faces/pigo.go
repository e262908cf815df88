package faces

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"gocv.io/x/gocv"
)

const (
	pigoShiftFactor  = 0.1
	pigoIoUThreshold = 0.2
	pigoMinSize      = 20

	DefaultPigoQuality = 5.0
)

// PigoDetector runs the pure Go pigo cascade.
// Pigo clusters by IoU, so MinNeighbors has no counterpart here; MinQuality
// plays the role of the sensitivity knob.
type PigoDetector struct {
	classifier *pigo.Pigo
	minQuality float32
}

func NewPigoDetector(cascadePath string, minQuality float32) (*PigoDetector, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("reading pigo cascade %q: %w", cascadePath, err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpacking pigo cascade %q: %w", cascadePath, err)
	}

	if minQuality <= 0 {
		minQuality = DefaultPigoQuality
	}

	return &PigoDetector{
		classifier: classifier,
		minQuality: minQuality,
	}, nil
}

func (p *PigoDetector) Detect(gray gocv.Mat) []image.Rectangle {
	if gray.Empty() || gray.Channels() != 1 {
		return nil
	}

	rows, cols := gray.Rows(), gray.Cols()
	params := pigo.CascadeParams{
		MinSize:     pigoMinSize,
		MaxSize:     max(rows, cols),
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: gray.ToBytes(),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := p.classifier.RunCascade(params, 0.0)
	dets = p.classifier.ClusterDetections(dets, pigoIoUThreshold)

	bounds := image.Rect(0, 0, cols, rows)
	rects := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q < p.minQuality {
			continue
		}
		r := detectionRect(det.Row, det.Col, det.Scale).Intersect(bounds)
		if r.Empty() {
			continue
		}
		rects = append(rects, r)
	}
	return rects
}

func (p *PigoDetector) Close() error {
	return nil
}

// detectionRect turns a pigo center/scale triple into a bounding box
func detectionRect(row, col, scale int) image.Rectangle {
	half := scale / 2
	return image.Rect(col-half, row-half, col+half, row+half)
}
