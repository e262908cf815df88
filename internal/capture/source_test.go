package capture

import (
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	mediaio "camera-studio/internal/io"
)

func TestSizeValidate(t *testing.T) {
	assert.NoError(t, Size{Width: 640, Height: 480}.Validate())
	assert.Error(t, Size{Width: 0, Height: 480}.Validate())
	assert.Error(t, Size{Width: 640, Height: -1}.Validate())
}

func TestPrepareSwapsChannelsAndResizes(t *testing.T) {
	// 2x2 solid blue in BGR order
	data := []byte{255, 0, 0, 255, 0, 0, 255, 0, 0, 255, 0, 0}
	raw, err := gocv.NewMatFromBytes(2, 2, gocv.MatTypeCV8UC3, data)
	require.NoError(t, err)
	defer raw.Close()

	frame, err := prepare(raw, Size{Width: 4, Height: 3})
	require.NoError(t, err)
	defer frame.Close()

	assert.Equal(t, 4, frame.Cols())
	assert.Equal(t, 3, frame.Rows())
	px := frame.GetVecbAt(1, 1)
	assert.Equal(t, []uint8{0, 0, 255}, []uint8{px[0], px[1], px[2]})
}

func TestPrepareKeepsMatchingSize(t *testing.T) {
	raw, err := gocv.NewMatFromBytes(1, 1, gocv.MatTypeCV8UC3, []byte{1, 2, 3})
	require.NoError(t, err)
	defer raw.Close()

	frame, err := prepare(raw, Size{Width: 1, Height: 1})
	require.NoError(t, err)
	defer frame.Close()

	assert.Equal(t, []byte{3, 2, 1}, frame.ToBytes())
}

func TestPrepareEmpty(t *testing.T) {
	raw := gocv.NewMat()
	defer raw.Close()

	_, err := prepare(raw, Size{Width: 1, Height: 1})
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestStillReturnsCopies(t *testing.T) {
	frame, err := gocv.NewMatFromBytes(1, 1, gocv.MatTypeCV8UC3, []byte{9, 8, 7})
	require.NoError(t, err)

	still := NewStill(frame, "held.png")
	defer still.Close()

	first, err := still.Read()
	require.NoError(t, err)
	first.SetUCharAt(0, 0, 0)
	first.Close()

	second, err := still.Read()
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, []byte{9, 8, 7}, second.ToBytes())
	assert.Equal(t, mediaio.MediaPhoto, still.Kind())
}

func TestEmptyStillNamesItsFile(t *testing.T) {
	still := NewStill(gocv.NewMat(), "blank.png")
	defer still.Close()

	_, err := still.Read()
	assert.ErrorIs(t, err, ErrReadFailed)
	assert.ErrorContains(t, err, "blank.png")
}

func TestDeviceOpenerStill(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	loader := mediaio.NewImageLoader(logger)

	src, err := gocv.NewMatFromBytes(2, 2, gocv.MatTypeCV8UC3, []byte{
		255, 0, 0, 255, 0, 0,
		255, 0, 0, 255, 0, 0,
	})
	require.NoError(t, err)
	defer src.Close()

	path := filepath.Join(t.TempDir(), "red.png")
	require.NoError(t, loader.SaveImage(src, path))

	opener := &DeviceOpener{Size: Size{Width: 2, Height: 2}, Loader: loader, Logger: logger}
	still, err := opener.OpenStill(path)
	require.NoError(t, err)
	defer still.Close()

	frame, err := still.Read()
	require.NoError(t, err)
	defer frame.Close()

	px := frame.GetVecbAt(0, 0)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{px[0], px[1], px[2]})
}

func TestDeviceOpenerMissingVideo(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	opener := &DeviceOpener{Size: Size{Width: 2, Height: 2}, Logger: logger}

	_, err := opener.OpenVideo(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}
