// Camera Studio
// Live camera and video viewer with per-frame adjustments,
// face detection, photo capture and saved presets.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"camera-studio/internal/config"
	"camera-studio/internal/faces"
	"camera-studio/internal/store"
)

const (
	AppName    = "Camera Studio"
	AppID      = "io.camerastudio.viewer"
	AppVersion = "1.0.0"
)

var (
	debugMode  bool
	configPath string

	logger *logrus.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:     "camera-studio",
	Short:   "Live camera viewer with adjustments, face detection and presets",
	Version: AppVersion,
	Long: `Camera Studio shows the webcam (or an opened video or photo) with
grayscale, invert, flip, brightness and contrast adjustments and optional
face boxes. Photos are saved together with the number of faces they contain
and adjustment sets can be stored as named presets.

Run without a subcommand to start the window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = initLogger(debugMode)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: runGUI,
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "YAML configuration file")
}

func initEnv() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

func openStore(ctx context.Context) (*store.Store, error) {
	db, err := store.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening settings database: %w", err)
	}
	return db, nil
}

func openDetector() (faces.Detector, error) {
	detector, err := faces.New(cfg.DetectorOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("loading face detector: %w", err)
	}
	return detector, nil
}

// openOptionalDetector returns nil when the cascade cannot be loaded. The
// window then runs with the face toggle disabled.
func openOptionalDetector() faces.Detector {
	detector, err := openDetector()
	if err != nil {
		logger.WithError(err).Warn("Face detection unavailable")
		return nil
	}
	return detector
}
