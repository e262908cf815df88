package core

import (
	"fmt"
	"image"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"camera-studio/internal/capture"
	mediaio "camera-studio/internal/io"
)

type fakeDetector struct {
	rects []image.Rectangle
	calls int
}

func (f *fakeDetector) Detect(gray gocv.Mat) []image.Rectangle {
	f.calls++
	return f.rects
}

func (f *fakeDetector) Close() error { return nil }

// fakeSource hands out queued pixel buffers as 2x2 RGB frames
type fakeSource struct {
	kind   mediaio.MediaKind
	queue  [][]byte
	reads  int
	closed bool
}

func (f *fakeSource) Read() (gocv.Mat, error) {
	f.reads++
	if len(f.queue) == 0 {
		return gocv.NewMat(), capture.ErrReadFailed
	}
	data := f.queue[0]
	if f.kind != mediaio.MediaPhoto {
		f.queue = f.queue[1:]
	}
	return gocv.NewMatFromBytes(2, 2, gocv.MatTypeCV8UC3, append([]byte(nil), data...))
}

func (f *fakeSource) Kind() mediaio.MediaKind { return f.kind }

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

type fakeOpener struct {
	camera *fakeSource
	videos map[string]*fakeSource
	stills map[string]*fakeSource
}

func newFakeOpener(cameraFrames ...[]byte) *fakeOpener {
	return &fakeOpener{
		camera: &fakeSource{kind: mediaio.MediaCamera, queue: cameraFrames},
		videos: make(map[string]*fakeSource),
		stills: make(map[string]*fakeSource),
	}
}

func (o *fakeOpener) OpenCamera() (capture.Source, error) {
	return o.camera, nil
}

func (o *fakeOpener) OpenVideo(path string) (capture.Source, error) {
	if src, ok := o.videos[path]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("no such video: %s", path)
}

func (o *fakeOpener) OpenStill(path string) (capture.Source, error) {
	if src, ok := o.stills[path]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("no such photo: %s", path)
}

func pixels(v byte) []byte {
	data := make([]byte, 2*2*3)
	for i := range data {
		data[i] = v
	}
	return data
}

func nullLogger() *logrus.Logger {
	logger, _ := logtest.NewNullLogger()
	return logger
}

func matFromBytes(t *testing.T, rows, cols int, mt gocv.MatType, data []byte) gocv.Mat {
	t.Helper()
	mat, err := gocv.NewMatFromBytes(rows, cols, mt, data)
	require.NoError(t, err)
	t.Cleanup(func() { mat.Close() })
	return mat
}
