// Face detection backends shared by the overlay transform and the face counter
package faces

import (
	"fmt"
	"image"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Detector parameters. These are fixed and not exposed to the user.
const (
	ScaleFactor  = 1.1
	MinNeighbors = 19
)

const (
	EngineHaar = "haar"
	EnginePigo = "pigo"
)

// Detector finds face regions in a single-channel intensity image
type Detector interface {
	Detect(gray gocv.Mat) []image.Rectangle
	Close() error
}

// Options selects and configures a detector backend
type Options struct {
	Engine      string
	HaarCascade string
	PigoCascade string
	// MinQuality drops pigo detections scoring below it
	MinQuality float32
}

// New builds the detector named by opts.Engine
func New(opts Options, logger *logrus.Logger) (Detector, error) {
	engine := strings.ToLower(strings.TrimSpace(opts.Engine))
	if engine == "" {
		engine = EngineHaar
	}

	logger.WithFields(logrus.Fields{
		"engine":       engine,
		"haar_cascade": opts.HaarCascade,
		"pigo_cascade": opts.PigoCascade,
	}).Debug("FACES: Creating detector")

	var (
		d   Detector
		err error
	)
	switch engine {
	case EngineHaar:
		d, err = NewHaarDetector(opts.HaarCascade)
	case EnginePigo:
		d, err = NewPigoDetector(opts.PigoCascade, opts.MinQuality)
	default:
		return nil, fmt.Errorf("unknown face detector engine: %s", opts.Engine)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Find converts frame to intensity and runs the detector over it.
// Three-channel frames are expected in RGB order.
func Find(d Detector, frame gocv.Mat) ([]image.Rectangle, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("frame is empty")
	}

	gray := gocv.NewMat()
	defer gray.Close()

	switch frame.Channels() {
	case 1:
		frame.CopyTo(&gray)
	case 3:
		if err := gocv.CvtColor(frame, &gray, gocv.ColorRGBToGray); err != nil {
			return nil, fmt.Errorf("convert to grayscale: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", frame.Channels())
	}

	return d.Detect(gray), nil
}

// Count returns the number of faces found in frame
func Count(d Detector, frame gocv.Mat) (int, error) {
	rects, err := Find(d, frame)
	if err != nil {
		return 0, err
	}
	return len(rects), nil
}
