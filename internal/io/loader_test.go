package io

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want MediaKind
	}{
		{"/videos/clip.mp4", MediaVideo},
		{"clip.MPG", MediaVideo},
		{"clip.mpeg", MediaVideo},
		{"photo.jpg", MediaPhoto},
		{"photo.JPEG", MediaPhoto},
		{"photo.bmp", MediaPhoto},
		{"dir.v2/photo.png", MediaPhoto},
		{"notes.txt", MediaUnknown},
		{"movie.avi", MediaUnknown},
		{"noext", MediaUnknown},
		{"", MediaUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.path), tt.path)
	}
}

func TestMediaKindString(t *testing.T) {
	assert.Equal(t, "video", MediaVideo.String())
	assert.Equal(t, "photo", MediaPhoto.String())
	assert.Equal(t, "camera", MediaCamera.String())
	assert.Equal(t, "unknown", MediaUnknown.String())
}

func TestAllExtensions(t *testing.T) {
	assert.Equal(t, []string{".mp4", ".mpg", ".mpeg", ".jpg", ".jpeg", ".bmp", ".png"}, AllExtensions())
}

func TestEnsurePhotoExtension(t *testing.T) {
	assert.Equal(t, "/tmp/shot.png", EnsurePhotoExtension("/tmp/shot"))
	assert.Equal(t, "/tmp/shot.jpg", EnsurePhotoExtension("/tmp/shot.jpg"))
	assert.Equal(t, "/tmp/shot.PNG", EnsurePhotoExtension("/tmp/shot.PNG"))
	assert.Equal(t, "/tmp/shot.png", EnsurePhotoExtension("/tmp/shot.gif"))
}

func TestSaveAndLoadRoundTripKeepsChannelOrder(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	loader := NewImageLoader(logger)

	// one pure red pixel in RGB order
	frame, err := gocv.NewMatFromBytes(1, 1, gocv.MatTypeCV8UC3, []byte{255, 0, 0})
	require.NoError(t, err)
	defer frame.Close()

	path := filepath.Join(t.TempDir(), "red.png")
	require.NoError(t, loader.SaveImage(frame, path))

	loaded, err := loader.LoadImage(path)
	require.NoError(t, err)
	defer loaded.Close()

	// OpenCV decodes to BGR
	assert.Equal(t, []byte{0, 0, 255}, loaded.ToBytes())
}

func TestSaveImageRejects(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	loader := NewImageLoader(logger)

	empty := gocv.NewMat()
	defer empty.Close()
	assert.Error(t, loader.SaveImage(empty, filepath.Join(t.TempDir(), "x.png")))

	frame := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC1)
	defer frame.Close()
	assert.Error(t, loader.SaveImage(frame, filepath.Join(t.TempDir(), "x.gif")))
}

func TestLoadImageMissing(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	_, err := NewImageLoader(logger).LoadImage(filepath.Join(t.TempDir(), "gone.jpg"))
	assert.Error(t, err)
}

func TestThumbnail(t *testing.T) {
	src := imaging.New(400, 200, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "wide.png")
	require.NoError(t, imaging.Save(src, path))

	thumb, err := Thumbnail(path, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), thumb.Bounds())

	_, err = Thumbnail(filepath.Join(t.TempDir(), "missing.png"), 10, 10)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
