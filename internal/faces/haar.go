package faces

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

// HaarDetector wraps an OpenCV cascade classifier
type HaarDetector struct {
	classifier gocv.CascadeClassifier
}

func NewHaarDetector(cascadePath string) (*HaarDetector, error) {
	if _, err := os.Stat(cascadePath); err != nil {
		return nil, fmt.Errorf("haar cascade %q: %w", cascadePath, err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("loading haar cascade %q", cascadePath)
	}

	return &HaarDetector{classifier: classifier}, nil
}

func (h *HaarDetector) Detect(gray gocv.Mat) []image.Rectangle {
	if gray.Empty() {
		return nil
	}
	return h.classifier.DetectMultiScaleWithParams(gray, ScaleFactor, MinNeighbors, 0, image.Point{}, image.Point{})
}

func (h *HaarDetector) Close() error {
	return h.classifier.Close()
}
