package algorithms

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"camera-studio/internal/settings"
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

func newFrame(t *testing.T, rows, cols int, mt gocv.MatType, data []byte) gocv.Mat {
	t.Helper()
	mat, err := gocv.NewMatFromBytes(rows, cols, mt, data)
	require.NoError(t, err)
	t.Cleanup(func() { mat.Close() })
	return mat
}

func solid(rows, cols, channels int, v byte) []byte {
	data := make([]byte, rows*cols*channels)
	for i := range data {
		data[i] = v
	}
	return data
}

func apply(t *testing.T, tr Transform, input gocv.Mat, adj settings.Adjustments) []byte {
	t.Helper()
	out, err := tr.Apply(input, adj)
	require.NoError(t, err)
	defer out.Close()
	return out.ToBytes()
}

func TestStandardOrder(t *testing.T) {
	r := Standard(nil)
	assert.Equal(t, []string{
		FaceOverlayName, ContrastName, BrightnessName, GrayscaleName, InvertName, FlipName,
	}, r.Names())

	_, ok := r.Get(InvertName)
	assert.True(t, ok)
	_, ok = r.Get("sepia")
	assert.False(t, ok)
}

func TestRegistryRegisterReplacesInPlace(t *testing.T) {
	r := Standard(nil)
	r.Register(NewContrast())
	assert.Len(t, r.Ordered(), 6)
	assert.Equal(t, ContrastName, r.Names()[1])
}

func TestContrastFactor(t *testing.T) {
	assert.InDelta(t, 1.0, ContrastFactor(0), 1e-12)
	assert.Greater(t, ContrastFactor(100), 1.0)
	assert.InDelta(t, 2.26773, ContrastFactor(100), 1e-4)
}

func TestContrastZeroIsIdentity(t *testing.T) {
	data := []byte{0, 17, 128, 200, 255, 3, 99, 140, 201, 64, 32, 250}
	frame := newFrame(t, 2, 2, gocv.MatTypeCV8UC3, data)

	adj := settings.Default()
	assert.Equal(t, data, apply(t, NewContrast(), frame, adj))

	table := ContrastTable(0)
	for i := range table {
		assert.Equal(t, uint8(i), table[i])
	}
}

func TestContrastRemap(t *testing.T) {
	frame := newFrame(t, 4, 4, gocv.MatTypeCV8UC3, solid(4, 4, 3, 200))

	adj := settings.NewBuilder().Contrast(100).Build()
	for _, v := range apply(t, NewContrast(), frame, adj) {
		// 128 + 2.2677*72 saturates
		assert.Equal(t, byte(255), v)
	}

	adj = settings.NewBuilder().Contrast(20).Build()
	for _, v := range apply(t, NewContrast(), frame, adj) {
		assert.Equal(t, byte(212), v)
	}

	dark := newFrame(t, 1, 1, gocv.MatTypeCV8UC1, []byte{100})
	assert.Equal(t, []byte{95}, apply(t, NewContrast(), dark, adj))
}

func TestBrightnessDefaultIsIdentity(t *testing.T) {
	data := []byte{0, 1, 127, 128, 254, 255}
	frame := newFrame(t, 1, 2, gocv.MatTypeCV8UC3, data)
	assert.Equal(t, data, apply(t, NewBrightness(), frame, settings.Default()))

	table := BrightnessTable(50)
	for i := range table {
		assert.Equal(t, uint8(i), table[i])
	}
}

func TestBrightnessScalesAndClamps(t *testing.T) {
	frame := newFrame(t, 1, 2, gocv.MatTypeCV8UC1, []byte{200, 100})

	assert.Equal(t, []byte{100, 50}, apply(t, NewBrightness(), frame, settings.NewBuilder().Brightness(0).Build()))
	assert.Equal(t, []byte{255, 150}, apply(t, NewBrightness(), frame, settings.NewBuilder().Brightness(100).Build()))
}

func TestGrayscale(t *testing.T) {
	frame := newFrame(t, 1, 2, gocv.MatTypeCV8UC3, []byte{255, 0, 0, 10, 10, 10})

	out, err := NewGrayscale().Apply(frame, settings.NewBuilder().Grayscale(true).Build())
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, []byte{76, 10}, out.ToBytes())

	unchanged := apply(t, NewGrayscale(), frame, settings.Default())
	assert.Equal(t, frame.ToBytes(), unchanged)
}

func TestInvertIsSelfInverse(t *testing.T) {
	data := []byte{0, 12, 128, 255, 77, 201}
	frame := newFrame(t, 1, 2, gocv.MatTypeCV8UC3, data)
	adj := settings.NewBuilder().Invert(true).Build()

	once, err := NewInvert().Apply(frame, adj)
	require.NoError(t, err)
	defer once.Close()
	assert.Equal(t, []byte{255, 243, 127, 0, 178, 54}, once.ToBytes())

	assert.Equal(t, data, apply(t, NewInvert(), once, adj))
}

func TestFlip(t *testing.T) {
	frame := newFrame(t, 2, 2, gocv.MatTypeCV8UC1, []byte{1, 2, 3, 4})

	tests := []struct {
		name string
		adj  settings.Adjustments
		want []byte
	}{
		{"none", settings.Default(), []byte{1, 2, 3, 4}},
		{"vertical", settings.NewBuilder().FlipVertical(true).Build(), []byte{3, 4, 1, 2}},
		{"horizontal", settings.NewBuilder().FlipHorizontal(true).Build(), []byte{2, 1, 4, 3}},
		{"both", settings.NewBuilder().FlipVertical(true).FlipHorizontal(true).Build(), []byte{4, 3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(t, NewFlip(), frame, tt.adj))
		})
	}
}

func TestFlipBothTwiceRestoresFrame(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	frame := newFrame(t, 2, 2, gocv.MatTypeCV8UC3, data)
	adj := settings.NewBuilder().FlipVertical(true).FlipHorizontal(true).Build()

	once, err := NewFlip().Apply(frame, adj)
	require.NoError(t, err)
	defer once.Close()

	assert.NotEqual(t, data, once.ToBytes())
	assert.Equal(t, data, apply(t, NewFlip(), once, adj))
}

func TestFaceOverlayDrawsBoxes(t *testing.T) {
	frame := newFrame(t, 8, 8, gocv.MatTypeCV8UC3, solid(8, 8, 3, 0))
	detector := &fakeDetector{rects: []image.Rectangle{image.Rect(1, 1, 6, 6)}}
	overlay := NewFaceOverlay(detector)

	out, err := overlay.Apply(frame, settings.NewBuilder().FaceOverlay(true).Build())
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 1, detector.calls)
	px := out.GetVecbAt(1, 1)
	assert.Equal(t, []uint8{255, 200, 70}, []uint8{px[0], px[1], px[2]})

	center := out.GetVecbAt(4, 4)
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{center[0], center[1], center[2]})
	assert.Equal(t, solid(8, 8, 3, 0), frame.ToBytes(), "input frame must not be modified")
}

func TestFaceOverlayDisabled(t *testing.T) {
	frame := newFrame(t, 4, 4, gocv.MatTypeCV8UC3, solid(4, 4, 3, 9))
	detector := &fakeDetector{rects: []image.Rectangle{image.Rect(0, 0, 3, 3)}}

	assert.Equal(t, frame.ToBytes(), apply(t, NewFaceOverlay(detector), frame, settings.Default()))
	assert.Equal(t, 0, detector.calls)

	assert.False(t, NewFaceOverlay(nil).Enabled(settings.NewBuilder().FaceOverlay(true).Build()))
}

func TestEmptyInputRejected(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	for _, tr := range Standard(nil).Ordered() {
		_, err := tr.Apply(empty, settings.Default())
		assert.Error(t, err, tr.Name())
	}
}
