package core

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"camera-studio/internal/capture"
	mediaio "camera-studio/internal/io"
	"camera-studio/internal/metrics"
	"camera-studio/internal/settings"
)

var (
	ErrNoFrame      = errors.New("no frame captured yet")
	ErrNoPhotos     = errors.New("no photo with that many faces")
	ErrPhotoMissing = errors.New("photo file was moved or deleted")
)

// Mode is where the viewer pulls frames from
type Mode int

const (
	ModeCamera Mode = iota
	ModeVideo
	ModeStill
)

func (m Mode) String() string {
	switch m {
	case ModeVideo:
		return "video"
	case ModeStill:
		return "still"
	default:
		return "camera"
	}
}

// Viewer owns the active source and the last good frame. Tick is called
// once per display period from the UI thread.
type Viewer struct {
	mu       sync.Mutex
	opener   capture.Opener
	pipeline *Pipeline
	frames   *FrameBuffer
	stats    *metrics.FrameStats
	logger   *logrus.Logger

	camera capture.Source
	video  capture.Source
	mode   Mode
	paused bool
}

func NewViewer(opener capture.Opener, pipeline *Pipeline, logger *logrus.Logger) *Viewer {
	return &Viewer{
		opener:   opener,
		pipeline: pipeline,
		frames:   NewFrameBuffer(),
		stats:    metrics.NewFrameStats(),
		logger:   logger,
		mode:     ModeCamera,
	}
}

// Start opens the camera
func (v *Viewer) Start() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.camera != nil {
		return nil
	}
	cam, err := v.opener.OpenCamera()
	if err != nil {
		return fmt.Errorf("starting camera: %w", err)
	}
	v.camera = cam
	v.logger.Info("VIEWER: Camera started")
	return nil
}

// Tick pulls one frame and runs the pipeline over it
func (v *Viewer) Tick(adj settings.Adjustments) (gocv.Mat, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	raw, fallback, err := v.nextFrameUnsafe()
	if err != nil {
		return gocv.NewMat(), err
	}
	defer raw.Close()

	start := time.Now()
	out, err := v.pipeline.Process(raw, adj)
	v.stats.Record(time.Since(start), fallback)
	if err != nil {
		return gocv.NewMat(), err
	}
	return out, nil
}

func (v *Viewer) nextFrameUnsafe() (gocv.Mat, bool, error) {
	if v.paused || v.mode == ModeStill {
		frame, err := v.frames.Get()
		return frame, false, err
	}

	src := v.camera
	if v.mode == ModeVideo {
		src = v.video
	}
	if src == nil {
		frame, err := v.frames.Get()
		return frame, true, err
	}

	frame, err := src.Read()
	if err != nil {
		frame.Close()
		v.logger.WithFields(logrus.Fields{
			"mode":  v.mode.String(),
			"error": err,
		}).Debug("VIEWER: Read failed, reusing last frame")

		last, lastErr := v.frames.Get()
		return last, true, lastErr
	}

	if err := v.frames.Set(frame); err != nil {
		frame.Close()
		return gocv.NewMat(), false, err
	}
	return frame, false, nil
}

// Open switches to the file at path. Unrecognized extensions return
// MediaUnknown and leave the viewer unchanged.
func (v *Viewer) Open(path string) (mediaio.MediaKind, error) {
	kind := mediaio.Classify(path)

	v.mu.Lock()
	defer v.mu.Unlock()

	switch kind {
	case mediaio.MediaVideo:
		src, err := v.opener.OpenVideo(path)
		if err != nil {
			return kind, err
		}
		v.closeVideoUnsafe()
		v.video = src
		v.mode = ModeVideo
		v.paused = false

	case mediaio.MediaPhoto:
		if err := v.openStillUnsafe(path); err != nil {
			return kind, err
		}

	default:
		v.logger.WithField("filepath", path).Debug("VIEWER: Ignoring unsupported file")
		return mediaio.MediaUnknown, nil
	}

	v.stats.Reset()
	v.logger.WithFields(logrus.Fields{
		"filepath": path,
		"kind":     kind.String(),
	}).Info("VIEWER: Opened media")
	return kind, nil
}

func (v *Viewer) openStillUnsafe(path string) error {
	src, err := v.opener.OpenStill(path)
	if err != nil {
		return err
	}
	defer src.Close()

	frame, err := src.Read()
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	defer frame.Close()

	if err := v.frames.Set(frame); err != nil {
		return err
	}
	v.closeVideoUnsafe()
	v.mode = ModeStill
	v.paused = false
	return nil
}

// CloseVideo stops playback and returns to the camera
func (v *Viewer) CloseVideo() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closeVideoUnsafe()
	v.mode = ModeCamera
	v.paused = false
	v.logger.Info("VIEWER: Returned to camera")
}

func (v *Viewer) closeVideoUnsafe() {
	if v.video == nil {
		return
	}
	if err := v.video.Close(); err != nil {
		v.logger.WithField("error", err).Warn("VIEWER: Closing video failed")
	}
	v.video = nil
}

// TogglePause freezes or resumes the current source. A held still is
// dismissed instead, switching back to the camera.
func (v *Viewer) TogglePause() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mode == ModeStill {
		v.mode = ModeCamera
		v.paused = false
		return false
	}
	v.paused = !v.paused
	v.logger.WithField("paused", v.paused).Debug("VIEWER: Pause toggled")
	return v.paused
}

// Snapshot processes the current raw frame for saving and counts the
// faces in it before any adjustment is applied.
func (v *Viewer) Snapshot(adj settings.Adjustments) (gocv.Mat, int, error) {
	raw, err := v.frames.Get()
	if err != nil {
		return gocv.NewMat(), 0, err
	}
	defer raw.Close()

	count, err := v.pipeline.CountFaces(raw)
	if err != nil {
		return gocv.NewMat(), 0, err
	}

	out, err := v.pipeline.Process(raw, adj)
	if err != nil {
		return gocv.NewMat(), 0, err
	}
	return out, count, nil
}

func (v *Viewer) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

func (v *Viewer) Paused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.paused
}

func (v *Viewer) Stats() metrics.Summary {
	return v.stats.Summary()
}

// Close releases capture handles and the held frame
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closeVideoUnsafe()
	if v.camera != nil {
		if err := v.camera.Close(); err != nil {
			v.logger.WithField("error", err).Warn("VIEWER: Closing camera failed")
		}
		v.camera = nil
	}
	v.frames.Close()
	v.logger.Info("VIEWER: Capture resources released")
}
