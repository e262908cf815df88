package algorithms

import (
	"fmt"
	"image/color"

	"gocv.io/x/gocv"

	"camera-studio/internal/faces"
	"camera-studio/internal/settings"
)

const faceBoxThickness = 2

// faceBoxColor is RGB (255,200,70). gocv writes the B field to channel 0,
// and our frames are RGB, so the fields are swapped on purpose.
var faceBoxColor = color.RGBA{R: 70, G: 200, B: 255, A: 0}

// FaceOverlay outlines every detected face on the color frame
type FaceOverlay struct {
	detector faces.Detector
}

func NewFaceOverlay(detector faces.Detector) *FaceOverlay {
	return &FaceOverlay{detector: detector}
}

func (f *FaceOverlay) Name() string        { return FaceOverlayName }
func (f *FaceOverlay) Description() string { return "Rectangle around each detected face" }

func (f *FaceOverlay) Enabled(adj settings.Adjustments) bool {
	return adj.FaceOverlay && f.detector != nil
}

func (f *FaceOverlay) Apply(input gocv.Mat, adj settings.Adjustments) (gocv.Mat, error) {
	if err := ensureInput(input); err != nil {
		return gocv.NewMat(), err
	}

	output := input.Clone()
	if !f.Enabled(adj) {
		return output, nil
	}

	rects, err := faces.Find(f.detector, input)
	if err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("face detection failed: %w", err)
	}

	for _, r := range rects {
		gocv.Rectangle(&output, r, faceBoxColor, faceBoxThickness)
	}
	return output, nil
}
