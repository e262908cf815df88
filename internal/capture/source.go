// Frame sources: live camera, video file and held still image
package capture

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	mediaio "camera-studio/internal/io"
)

// ErrReadFailed is returned when a source could not deliver a frame
var ErrReadFailed = errors.New("frame read failed")

// Source supplies display-sized RGB frames
type Source interface {
	// Read returns a new frame owned by the caller
	Read() (gocv.Mat, error)
	Kind() mediaio.MediaKind
	Close() error
}

// Opener creates sources; the viewer depends on it so tests can swap devices out
type Opener interface {
	OpenCamera() (Source, error)
	OpenVideo(path string) (Source, error)
	OpenStill(path string) (Source, error)
}

// Size is the fixed display resolution every frame is scaled to
type Size struct {
	Width  int
	Height int
}

func (s Size) Point() image.Point {
	return image.Pt(s.Width, s.Height)
}

func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid display size: %dx%d", s.Width, s.Height)
	}
	return nil
}

// prepare converts a decoded BGR frame to RGB at display size
func prepare(raw gocv.Mat, size Size) (gocv.Mat, error) {
	if raw.Empty() {
		return gocv.NewMat(), ErrReadFailed
	}

	rgb := gocv.NewMat()
	if err := gocv.CvtColor(raw, &rgb, gocv.ColorBGRToRGB); err != nil {
		rgb.Close()
		return gocv.NewMat(), fmt.Errorf("convert to RGB: %w", err)
	}

	if rgb.Cols() == size.Width && rgb.Rows() == size.Height {
		return rgb, nil
	}

	resized := gocv.NewMat()
	err := gocv.Resize(rgb, &resized, size.Point(), 0, 0, gocv.InterpolationArea)
	rgb.Close()
	if err != nil {
		resized.Close()
		return gocv.NewMat(), fmt.Errorf("resize to %dx%d: %w", size.Width, size.Height, err)
	}
	return resized, nil
}
