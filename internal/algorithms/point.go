package algorithms

import (
	"math"

	"gocv.io/x/gocv"

	"camera-studio/internal/settings"
)

// Contrast applies out = 128 + factor*(in-128) to every channel
type Contrast struct{}

func NewContrast() *Contrast {
	return &Contrast{}
}

func (c *Contrast) Name() string        { return ContrastName }
func (c *Contrast) Description() string { return "Per-channel contrast stretch around mid-gray" }

// Level 0 is the identity
func (c *Contrast) Enabled(adj settings.Adjustments) bool {
	return adj.Contrast != 0
}

func (c *Contrast) Apply(input gocv.Mat, adj settings.Adjustments) (gocv.Mat, error) {
	if err := ensureInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if !c.Enabled(adj) {
		return input.Clone(), nil
	}
	return applyTable(input, ContrastTable(adj.Contrast))
}

// ContrastFactor is 259*(level+255) / (255*(259-level))
func ContrastFactor(level int) float64 {
	l := float64(level)
	return (259 * (l + 255)) / (255 * (259 - l))
}

func ContrastTable(level int) [256]uint8 {
	factor := ContrastFactor(level)
	return pointTable(func(v float64) float64 {
		return 128 + factor*(v-128)
	})
}

// Brightness scales every channel by (level+50)/100
type Brightness struct{}

func NewBrightness() *Brightness {
	return &Brightness{}
}

func (b *Brightness) Name() string        { return BrightnessName }
func (b *Brightness) Description() string { return "Multiplicative brightness, 50 keeps the frame as is" }

func (b *Brightness) Enabled(adj settings.Adjustments) bool {
	return adj.Brightness != settings.DefaultBrightness
}

func (b *Brightness) Apply(input gocv.Mat, adj settings.Adjustments) (gocv.Mat, error) {
	if err := ensureInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if !b.Enabled(adj) {
		return input.Clone(), nil
	}
	return applyTable(input, BrightnessTable(adj.Brightness))
}

func BrightnessMultiplier(level int) float64 {
	return float64(level+50) / 100
}

func BrightnessTable(level int) [256]uint8 {
	mult := BrightnessMultiplier(level)
	return pointTable(func(v float64) float64 {
		return v * mult
	})
}

// pointTable samples f over all 8-bit values, rounding and clamping to [0,255]
func pointTable(f func(float64) float64) [256]uint8 {
	var table [256]uint8
	for i := range table {
		v := math.Round(f(float64(i)))
		switch {
		case v < 0:
			table[i] = 0
		case v > 255:
			table[i] = 255
		default:
			table[i] = uint8(v)
		}
	}
	return table
}

// applyTable maps every channel of input through the same lookup table
func applyTable(input gocv.Mat, table [256]uint8) (gocv.Mat, error) {
	lut := gocv.NewMatWithSize(1, 256, gocv.MatTypeCV8U)
	defer lut.Close()
	for i, v := range table {
		lut.SetUCharAt(0, i, v)
	}

	output := gocv.NewMat()
	gocv.LUT(input, lut, &output)
	return output, nil
}
