package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"camera-studio/internal/core"
	"camera-studio/internal/faces"
	mediaio "camera-studio/internal/io"
	"camera-studio/internal/settings"
	"camera-studio/internal/store"
)

var (
	processPreset string
	processOut    string
	processRecord bool
)

var processCmd = &cobra.Command{
	Use:   "process [flags] FILE...",
	Short: "Apply a saved preset to photos without opening the window",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processPreset, "preset", store.DefaultPresetName, "Preset to apply")
	processCmd.Flags().StringVar(&processOut, "out", "processed", "Output directory")
	processCmd.Flags().BoolVar(&processRecord, "record", false, "Record outputs with their face counts for lookup")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureDefaultPreset(ctx); err != nil {
		return err
	}
	preset, err := db.GetPreset(ctx, processPreset)
	if err != nil {
		return err
	}
	adj := preset.Adjustments.Normalize()

	var detector faces.Detector
	if adj.FaceOverlay || processRecord {
		d, err := openDetector()
		if err != nil {
			return err
		}
		defer d.Close()
		detector = d
	}

	if err := os.MkdirAll(processOut, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	batch := newBatchProcessor(core.NewPipeline(detector, logger), mediaio.NewImageLoader(logger), processOut)

	logger.WithFields(logrus.Fields{
		"preset": preset.Name,
		"files":  len(args),
		"out":    processOut,
	}).Info("Batch processing started")

	bar := progressbar.NewOptions(len(args),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	failed := 0
	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}

		out, count, err := batch.processFile(path, adj)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"filepath": path,
				"error":    err,
			}).Warn("Skipping file")
			failed++
		} else if processRecord {
			if _, err := db.CreatePhoto(ctx, out, filepath.Base(out), count); err != nil {
				return err
			}
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

// batchProcessor runs the frame pipeline over still images
type batchProcessor struct {
	pipeline *core.Pipeline
	loader   *mediaio.ImageLoader
	outDir   string
	// output paths already handed out in this run
	taken map[string]bool
}

func newBatchProcessor(pipeline *core.Pipeline, loader *mediaio.ImageLoader, outDir string) *batchProcessor {
	return &batchProcessor{
		pipeline: pipeline,
		loader:   loader,
		outDir:   outDir,
		taken:    make(map[string]bool),
	}
}

// processFile writes the adjusted copy of path into outDir and returns the
// written path with the face count of the unadjusted image
func (b *batchProcessor) processFile(path string, adj settings.Adjustments) (string, int, error) {
	raw, err := b.loader.LoadImage(path)
	if err != nil {
		return "", 0, err
	}
	defer raw.Close()

	rgb := gocv.NewMat()
	defer rgb.Close()
	if err := gocv.CvtColor(raw, &rgb, gocv.ColorBGRToRGB); err != nil {
		return "", 0, fmt.Errorf("converting %s: %w", path, err)
	}

	count, err := b.pipeline.CountFaces(rgb)
	if err != nil {
		return "", 0, err
	}

	processed, err := b.pipeline.Process(rgb, adj)
	if err != nil {
		return "", 0, err
	}
	defer processed.Close()

	out := b.claimOutput(path)
	if err := b.loader.SaveImage(processed, out); err != nil {
		return "", 0, err
	}
	return out, count, nil
}

// claimOutput reserves the output path for src. Inputs sharing a base name
// get a numeric suffix so no file in the batch overwrites another.
func (b *batchProcessor) claimOutput(src string) string {
	out := outputPath(b.outDir, src)
	if b.taken[out] {
		ext := filepath.Ext(out)
		stem := strings.TrimSuffix(out, ext)
		for i := 1; b.taken[out]; i++ {
			out = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
	}
	b.taken[out] = true
	return out
}

func outputPath(dir, src string) string {
	return mediaio.EnsurePhotoExtension(filepath.Join(dir, filepath.Base(src)))
}
