// Per-frame transform registry
package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"

	"camera-studio/internal/faces"
	"camera-studio/internal/settings"
)

// Transform names in pipeline order
const (
	FaceOverlayName = "face_overlay"
	ContrastName    = "contrast"
	BrightnessName  = "brightness"
	GrayscaleName   = "grayscale"
	InvertName      = "invert"
	FlipName        = "flip"
)

// Transform is one stateless step of the frame pipeline.
// Apply never modifies input and always returns a Mat owned by the caller.
type Transform interface {
	Name() string
	Description() string
	Enabled(adj settings.Adjustments) bool
	Apply(input gocv.Mat, adj settings.Adjustments) (gocv.Mat, error)
}

// Registry keeps transforms in the order they were registered
type Registry struct {
	transforms map[string]Transform
	order      []string
}

func NewRegistry() *Registry {
	return &Registry{
		transforms: make(map[string]Transform),
		order:      make([]string, 0),
	}
}

// Register appends t to the chain, replacing any transform with the same name in place
func (r *Registry) Register(t Transform) {
	if _, exists := r.transforms[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.transforms[t.Name()] = t
}

func (r *Registry) Get(name string) (Transform, bool) {
	t, exists := r.transforms[name]
	return t, exists
}

// Ordered returns the transforms in chain order
func (r *Registry) Ordered() []Transform {
	result := make([]Transform, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.transforms[name])
	}
	return result
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Standard builds the fixed chain: face boxes are drawn before color is
// destroyed, and flips run last so orientation always matches the toggles.
// A nil detector disables the face overlay.
func Standard(detector faces.Detector) *Registry {
	r := NewRegistry()
	r.Register(NewFaceOverlay(detector))
	r.Register(NewContrast())
	r.Register(NewBrightness())
	r.Register(NewGrayscale())
	r.Register(NewInvert())
	r.Register(NewFlip())
	return r
}

func ensureInput(input gocv.Mat) error {
	if input.Empty() {
		return fmt.Errorf("input image is empty")
	}
	return nil
}
