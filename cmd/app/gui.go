package main

import (
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"camera-studio/internal/capture"
	"camera-studio/internal/core"
	"camera-studio/internal/gui"
	mediaio "camera-studio/internal/io"
)

// runGUI starts the window. Startup failures are logged and the process
// exits cleanly.
func runGUI(cmd *cobra.Command, args []string) error {
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": debugMode,
		"device":     cfg.Camera.Device,
		"fps":        cfg.Display.FPS,
	}).Info("Starting " + AppName)

	db, err := openStore(cmd.Context())
	if err != nil {
		logger.WithError(err).Error("Startup failed")
		return nil
	}
	defer db.Close()

	detector := openOptionalDetector()
	if detector != nil {
		defer detector.Close()
	}

	loader := mediaio.NewImageLoader(logger)
	opener := &capture.DeviceOpener{
		DeviceID: cfg.Camera.Device,
		Size:     cfg.FrameSize(),
		Mirror:   cfg.Camera.Mirror,
		Loader:   loader,
		Logger:   logger,
	}

	viewer := core.NewViewer(opener, core.NewPipeline(detector, logger), logger)
	if err := viewer.Start(); err != nil {
		logger.WithError(err).Error("Startup failed")
		viewer.Close()
		return nil
	}

	session := core.NewSession(viewer, loader, db, db, logger)

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.MediaVideoIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, session, gui.Options{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		FPS:    cfg.Display.FPS,
	}, logger)
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	return nil
}
