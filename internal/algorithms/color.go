package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"

	"camera-studio/internal/settings"
)

// Grayscale converts an RGB frame to a single luma channel
type Grayscale struct{}

func NewGrayscale() *Grayscale {
	return &Grayscale{}
}

func (g *Grayscale) Name() string        { return GrayscaleName }
func (g *Grayscale) Description() string { return "RGB to single-channel luma" }

func (g *Grayscale) Enabled(adj settings.Adjustments) bool {
	return adj.Grayscale
}

func (g *Grayscale) Apply(input gocv.Mat, adj settings.Adjustments) (gocv.Mat, error) {
	if err := ensureInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if !g.Enabled(adj) || input.Channels() == 1 {
		return input.Clone(), nil
	}

	output := gocv.NewMat()
	if err := gocv.CvtColor(input, &output, gocv.ColorRGBToGray); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("grayscale conversion failed: %w", err)
	}
	return output, nil
}

// Invert replaces every value v with 255-v
type Invert struct{}

func NewInvert() *Invert {
	return &Invert{}
}

func (i *Invert) Name() string        { return InvertName }
func (i *Invert) Description() string { return "Color negative" }

func (i *Invert) Enabled(adj settings.Adjustments) bool {
	return adj.Invert
}

func (i *Invert) Apply(input gocv.Mat, adj settings.Adjustments) (gocv.Mat, error) {
	if err := ensureInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if !i.Enabled(adj) {
		return input.Clone(), nil
	}

	output := gocv.NewMat()
	gocv.BitwiseNot(input, &output)
	return output, nil
}
