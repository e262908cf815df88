// Adjustment values read by the frame pipeline
package settings

import "fmt"

const (
	MinLevel = 0
	MaxLevel = 100

	// DefaultBrightness maps to a multiplier of 1.0
	DefaultBrightness = 50
	DefaultContrast   = 0
)

// Adjustments is the immutable set of toggles and levels applied to every frame.
// It is passed by value into each pipeline call.
type Adjustments struct {
	Grayscale      bool `json:"grayscale"`
	Invert         bool `json:"invert"`
	FlipVertical   bool `json:"flip_vertical"`
	FlipHorizontal bool `json:"flip_horizontal"`
	FaceOverlay    bool `json:"face_overlay"`
	Brightness     int  `json:"brightness"`
	Contrast       int  `json:"contrast"`
}

// Default returns adjustments that leave a frame untouched
func Default() Adjustments {
	return Adjustments{
		Brightness: DefaultBrightness,
		Contrast:   DefaultContrast,
	}
}

// Normalize clamps both levels into [MinLevel, MaxLevel]
func (a Adjustments) Normalize() Adjustments {
	a.Brightness = clampLevel(a.Brightness)
	a.Contrast = clampLevel(a.Contrast)
	return a
}

// Validate reports levels outside the slider range
func (a Adjustments) Validate() error {
	if a.Brightness < MinLevel || a.Brightness > MaxLevel {
		return fmt.Errorf("brightness must be between %d and %d, got %d", MinLevel, MaxLevel, a.Brightness)
	}
	if a.Contrast < MinLevel || a.Contrast > MaxLevel {
		return fmt.Errorf("contrast must be between %d and %d, got %d", MinLevel, MaxLevel, a.Contrast)
	}
	return nil
}

// IsIdentity is true when no transform would change a frame
func (a Adjustments) IsIdentity() bool {
	return a == Default()
}

func (a Adjustments) String() string {
	return fmt.Sprintf("gray=%t invert=%t flipV=%t flipH=%t faces=%t brightness=%d contrast=%d",
		a.Grayscale, a.Invert, a.FlipVertical, a.FlipHorizontal, a.FaceOverlay, a.Brightness, a.Contrast)
}

func clampLevel(v int) int {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

// Preset is a named, persisted snapshot of Adjustments
type Preset struct {
	ID          int64
	Name        string
	Adjustments Adjustments
}
