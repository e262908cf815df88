// Last good frame holder
package core

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// FrameBuffer keeps the most recent successfully captured raw frame.
// It is what the viewer falls back to when a read fails, what a paused
// or still view keeps showing, and what a photo capture saves.
type FrameBuffer struct {
	mu    sync.RWMutex
	frame gocv.Mat
	has   bool
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		frame: gocv.NewMat(),
	}
}

// Set stores a copy of frame, replacing the previous one
func (fb *FrameBuffer) Set(frame gocv.Mat) error {
	if frame.Empty() {
		return fmt.Errorf("cannot store empty frame")
	}
	if frame.Cols() <= 0 || frame.Rows() <= 0 {
		return fmt.Errorf("invalid frame dimensions: %dx%d", frame.Cols(), frame.Rows())
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	fb.frame.Close()
	fb.frame = frame.Clone()
	fb.has = true
	return nil
}

// Get returns a copy of the stored frame; ErrNoFrame if nothing was stored
func (fb *FrameBuffer) Get() (gocv.Mat, error) {
	fb.mu.RLock()
	defer fb.mu.RUnlock()

	if !fb.has {
		return gocv.NewMat(), ErrNoFrame
	}
	return fb.frame.Clone(), nil
}

// Clear drops the stored frame
func (fb *FrameBuffer) Clear() {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	fb.frame.Close()
	fb.frame = gocv.NewMat()
	fb.has = false
}

func (fb *FrameBuffer) Close() {
	fb.Clear()
}
