package main

import (
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"camera-studio/internal/core"
	mediaio "camera-studio/internal/io"
	"camera-studio/internal/settings"
)

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "a.jpg"), outputPath("out", "/photos/a.jpg"))
	assert.Equal(t, filepath.Join("out", "b.png"), outputPath("out", "b"))
	assert.Equal(t, filepath.Join("out", "c.png"), outputPath("out", "c.gif"))
}

func TestProcessFileInverts(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	dir := t.TempDir()

	// BGR on disk: blue 10, green 20, red 30
	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 4, 4, gocv.MatTypeCV8UC3)
	defer src.Close()
	input := filepath.Join(dir, "in.png")
	require.True(t, gocv.IMWrite(input, src))

	batch := newBatchProcessor(core.NewPipeline(nil, logger), mediaio.NewImageLoader(logger), filepath.Join(dir, "out"))
	require.NoError(t, os.MkdirAll(batch.outDir, 0o755))

	out, count, err := batch.processFile(input, settings.NewBuilder().Invert(true).Build())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, filepath.Join(dir, "out", "in.png"), out)

	written := gocv.IMRead(out, gocv.IMReadColor)
	defer written.Close()
	require.False(t, written.Empty())
	assert.Equal(t, gocv.Vecb{245, 235, 225}, written.GetVecbAt(0, 0))
}

func TestProcessFileRejectsUnknownFormat(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	batch := newBatchProcessor(core.NewPipeline(nil, logger), mediaio.NewImageLoader(logger), t.TempDir())

	_, _, err := batch.processFile(filepath.Join(t.TempDir(), "notes.txt"), settings.Default())
	assert.Error(t, err)
}

func TestClaimOutputSuffixesSameBaseName(t *testing.T) {
	batch := newBatchProcessor(nil, nil, "out")

	assert.Equal(t, filepath.Join("out", "a.jpg"), batch.claimOutput("/day1/a.jpg"))
	assert.Equal(t, filepath.Join("out", "a-1.jpg"), batch.claimOutput("/day2/a.jpg"))
	assert.Equal(t, filepath.Join("out", "a-2.jpg"), batch.claimOutput("/day3/a.jpg"))
	assert.Equal(t, filepath.Join("out", "b.png"), batch.claimOutput("/day1/b"))
}

func TestProcessFileKeepsSameNamedInputsApart(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	dir := t.TempDir()

	inputs := make([]string, 0, 2)
	for i, sub := range []string{"left", "right"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		v := float64(40 * (i + 1))
		src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), 2, 2, gocv.MatTypeCV8UC3)
		path := filepath.Join(dir, sub, "frame.png")
		require.True(t, gocv.IMWrite(path, src))
		src.Close()
		inputs = append(inputs, path)
	}

	batch := newBatchProcessor(core.NewPipeline(nil, logger), mediaio.NewImageLoader(logger), filepath.Join(dir, "out"))
	require.NoError(t, os.MkdirAll(batch.outDir, 0o755))

	first, _, err := batch.processFile(inputs[0], settings.Default())
	require.NoError(t, err)
	second, _, err := batch.processFile(inputs[1], settings.Default())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	a := gocv.IMRead(first, gocv.IMReadColor)
	defer a.Close()
	b := gocv.IMRead(second, gocv.IMReadColor)
	defer b.Close()
	assert.Equal(t, uint8(40), a.GetUCharAt(0, 0))
	assert.Equal(t, uint8(80), b.GetUCharAt(0, 0))
}
