package algorithms

import (
	"gocv.io/x/gocv"

	"camera-studio/internal/settings"
)

// OpenCV flip codes
const (
	flipTopBottom = 0
	flipLeftRight = 1
	flipBoth      = -1
)

// Flip mirrors the frame vertically, horizontally or both
type Flip struct{}

func NewFlip() *Flip {
	return &Flip{}
}

func (f *Flip) Name() string        { return FlipName }
func (f *Flip) Description() string { return "Mirror top-to-bottom and/or left-to-right" }

func (f *Flip) Enabled(adj settings.Adjustments) bool {
	return adj.FlipVertical || adj.FlipHorizontal
}

func (f *Flip) Apply(input gocv.Mat, adj settings.Adjustments) (gocv.Mat, error) {
	if err := ensureInput(input); err != nil {
		return gocv.NewMat(), err
	}

	code, ok := flipCode(adj)
	if !ok {
		return input.Clone(), nil
	}

	output := gocv.NewMat()
	gocv.Flip(input, &output, code)
	return output, nil
}

func flipCode(adj settings.Adjustments) (int, bool) {
	switch {
	case adj.FlipVertical && adj.FlipHorizontal:
		return flipBoth, true
	case adj.FlipVertical:
		return flipTopBottom, true
	case adj.FlipHorizontal:
		return flipLeftRight, true
	default:
		return 0, false
	}
}
