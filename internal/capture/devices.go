package capture

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	mediaio "camera-studio/internal/io"
)

// Camera reads from a local capture device
type Camera struct {
	device *gocv.VideoCapture
	raw    gocv.Mat
	size   Size
	mirror bool
}

func NewCamera(deviceID int, size Size, mirror bool) (*Camera, error) {
	device, err := gocv.VideoCaptureDevice(deviceID)
	if err != nil {
		return nil, fmt.Errorf("opening capture device %d: %w", deviceID, err)
	}
	if !device.IsOpened() {
		device.Close()
		return nil, fmt.Errorf("capture device %d is not available", deviceID)
	}

	device.Set(gocv.VideoCaptureFrameWidth, float64(size.Width))
	device.Set(gocv.VideoCaptureFrameHeight, float64(size.Height))

	return &Camera{
		device: device,
		raw:    gocv.NewMat(),
		size:   size,
		mirror: mirror,
	}, nil
}

func (c *Camera) Read() (gocv.Mat, error) {
	if ok := c.device.Read(&c.raw); !ok || c.raw.Empty() {
		return gocv.NewMat(), ErrReadFailed
	}

	if !c.mirror {
		return prepare(c.raw, c.size)
	}

	mirrored := gocv.NewMat()
	defer mirrored.Close()
	gocv.Flip(c.raw, &mirrored, 1)
	return prepare(mirrored, c.size)
}

func (c *Camera) Kind() mediaio.MediaKind { return mediaio.MediaCamera }

func (c *Camera) Close() error {
	c.raw.Close()
	return c.device.Close()
}

// VideoFile plays a video from disk; at end of stream reads fail
type VideoFile struct {
	capture *gocv.VideoCapture
	raw     gocv.Mat
	size    Size
	path    string
}

func NewVideoFile(path string, size Size) (*VideoFile, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening video %s: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("video %s could not be opened", path)
	}

	return &VideoFile{
		capture: vc,
		raw:     gocv.NewMat(),
		size:    size,
		path:    path,
	}, nil
}

func (v *VideoFile) Read() (gocv.Mat, error) {
	if ok := v.capture.Read(&v.raw); !ok || v.raw.Empty() {
		return gocv.NewMat(), fmt.Errorf("%s: %w", v.path, ErrReadFailed)
	}
	return prepare(v.raw, v.size)
}

func (v *VideoFile) Kind() mediaio.MediaKind { return mediaio.MediaVideo }

func (v *VideoFile) Close() error {
	v.raw.Close()
	return v.capture.Close()
}

// Still holds one decoded image; every read hands out a copy
type Still struct {
	frame gocv.Mat
	path  string
}

// NewStill wraps an already prepared RGB frame, taking ownership of it
func NewStill(frame gocv.Mat, path string) *Still {
	return &Still{frame: frame, path: path}
}

func (s *Still) Read() (gocv.Mat, error) {
	if s.frame.Empty() {
		return gocv.NewMat(), fmt.Errorf("%s: %w", s.path, ErrReadFailed)
	}
	return s.frame.Clone(), nil
}

func (s *Still) Kind() mediaio.MediaKind { return mediaio.MediaPhoto }

func (s *Still) Close() error {
	return s.frame.Close()
}

// DeviceOpener opens real devices and files through gocv
type DeviceOpener struct {
	DeviceID int
	Size     Size
	Mirror   bool
	Loader   *mediaio.ImageLoader
	Logger   *logrus.Logger
}

func (o *DeviceOpener) OpenCamera() (Source, error) {
	o.Logger.WithFields(logrus.Fields{
		"device": o.DeviceID,
		"width":  o.Size.Width,
		"height": o.Size.Height,
	}).Info("CAPTURE: Opening camera")

	cam, err := NewCamera(o.DeviceID, o.Size, o.Mirror)
	if err != nil {
		return nil, err
	}
	return cam, nil
}

func (o *DeviceOpener) OpenVideo(path string) (Source, error) {
	o.Logger.WithField("filepath", path).Info("CAPTURE: Opening video")

	video, err := NewVideoFile(path, o.Size)
	if err != nil {
		return nil, err
	}
	return video, nil
}

func (o *DeviceOpener) OpenStill(path string) (Source, error) {
	raw, err := o.Loader.LoadImage(path)
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	frame, err := prepare(raw, o.Size)
	if err != nil {
		return nil, fmt.Errorf("preparing %s: %w", path, err)
	}
	return NewStill(frame, path), nil
}
