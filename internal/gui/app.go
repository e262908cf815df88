// Main window: live view, action buttons and the advanced settings panel
package gui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"camera-studio/internal/core"
	mediaio "camera-studio/internal/io"
	"camera-studio/internal/metrics"
	"camera-studio/internal/store"
)

// Options sizes the window and sets the display rate
type Options struct {
	Width  int
	Height int
	FPS    int
}

// Application represents the main window and its display loop
type Application struct {
	app     fyne.App
	window  fyne.Window
	logger  *logrus.Logger
	session *core.Session
	opts    Options

	canvas      *VideoCanvas
	controls    *ControlPanel
	menuHandler *MenuHandler
	presets     *PresetDialogs
	lookup      *FaceLookup

	photoBtn  *widget.Button
	openBtn   *widget.Button
	lookupBtn *widget.Button
	pauseBtn  *widget.Button
	quitBtn   *widget.Button
	advanced  *widget.Check
	status    *widget.Label

	shownMode   core.Mode
	shownPaused bool

	ticks     int
	done      chan struct{}
	closeOnce sync.Once
}

func NewApplication(app fyne.App, session *core.Session, opts Options, logger *logrus.Logger) *Application {
	if opts.FPS <= 0 || opts.FPS > metrics.MaxFPS {
		opts.FPS = metrics.DefaultFPS
	}

	window := app.NewWindow("Camera Studio")
	window.CenterOnScreen()

	appInstance := &Application{
		app:     app,
		window:  window,
		logger:  logger,
		session: session,
		opts:    opts,
		done:    make(chan struct{}),
	}

	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()
	appInstance.refreshLabels()

	return appInstance
}

func (a *Application) initializeGUI() {
	a.canvas = NewVideoCanvas(a.opts.Width, a.opts.Height)
	a.controls = NewControlPanel()
	a.controls.SetFaceOverlayAvailable(a.session.HasDetector())
	a.menuHandler = NewMenuHandler(a.window, a.session, a.controls, a.logger)
	a.presets = NewPresetDialogs(a.window, a.session, a.controls, a.logger)
	a.lookup = NewFaceLookup(a.window, a.session, a.logger)

	a.photoBtn = widget.NewButtonWithIcon("Make photo", theme.MediaPhotoIcon(), a.menuHandler.MakePhoto)
	a.openBtn = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), a.toggleOpen)
	a.lookupBtn = widget.NewButtonWithIcon("Lookup by face count", theme.SearchIcon(), a.lookup.Show)
	a.pauseBtn = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), a.togglePause)
	a.quitBtn = widget.NewButtonWithIcon("Quit", theme.LogoutIcon(), a.window.Close)

	a.advanced = widget.NewCheck("Advanced settings", a.controls.SetVisible)
	a.status = widget.NewLabel("Starting camera...")
}

func (a *Application) setupLayout() {
	buttons := container.NewHBox(
		a.photoBtn,
		a.openBtn,
		a.lookupBtn,
		a.pauseBtn,
		a.quitBtn,
	)

	top := container.NewVBox(buttons, widget.NewSeparator())
	bottom := container.NewVBox(widget.NewSeparator(), a.advanced, a.controls.GetContainer(), a.status)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu(a.lookup.Show, a.window.Close))
	a.window.SetContent(container.NewBorder(top, bottom, nil, nil, container.NewCenter(a.canvas.GetContainer())))
}

func (a *Application) setupCallbacks() {
	a.controls.SetCallbacks(a.presets.Save, a.presets.Open)

	a.menuHandler.SetCallbacks(
		// onMediaOpened
		func(filepath string, kind mediaio.MediaKind) {
			a.refreshLabels()
			a.status.SetText(fmt.Sprintf("Opened %s: %s", kind, filepath))
		},
		// onPhotoSaved
		func(rec store.PhotoRecord) {
			a.status.SetText(fmt.Sprintf("Saved %s (%d faces)", rec.Name, rec.Faces))
		},
	)

	a.lookup.SetCallback(func(rec store.PhotoRecord) {
		a.refreshLabels()
		a.status.SetText(fmt.Sprintf("Showing %s", rec.Name))
	})
}

// toggleOpen opens a file, or closes the video when one is playing
func (a *Application) toggleOpen() {
	if a.session.Viewer().Mode() == core.ModeVideo {
		a.session.Viewer().CloseVideo()
		a.refreshLabels()
		return
	}
	a.menuHandler.OpenMedia()
}

func (a *Application) togglePause() {
	a.session.Viewer().TogglePause()
	a.refreshLabels()
}

func (a *Application) refreshLabels() {
	viewer := a.session.Viewer()
	mode, paused := viewer.Mode(), viewer.Paused()
	a.shownMode, a.shownPaused = mode, paused

	a.pauseBtn.SetText(pauseLabel(mode, paused))
	a.openBtn.SetText(openLabel(mode))
	if mode == core.ModeStill {
		a.pauseBtn.SetIcon(theme.MediaVideoIcon())
	} else if paused {
		a.pauseBtn.SetIcon(theme.MediaPlayIcon())
	} else {
		a.pauseBtn.SetIcon(theme.MediaPauseIcon())
	}
}

func pauseLabel(mode core.Mode, paused bool) string {
	switch {
	case mode == core.ModeStill:
		return "Switch to camera"
	case paused:
		return "Play"
	default:
		return "Pause"
	}
}

func openLabel(mode core.Mode) string {
	if mode == core.ModeVideo {
		return "Close video"
	}
	return "Open"
}

// tick renders one frame; it runs on the UI thread
func (a *Application) tick() {
	viewer := a.session.Viewer()
	if viewer.Mode() != a.shownMode || viewer.Paused() != a.shownPaused {
		a.refreshLabels()
	}

	frame, err := viewer.Tick(a.controls.Adjustments())
	if err != nil {
		if !errors.Is(err, core.ErrNoFrame) {
			a.logger.WithField("error", err).Warn("GUI: Frame processing failed")
		}
		return
	}
	defer frame.Close()

	if err := a.canvas.Update(frame); err != nil {
		a.logger.WithField("error", err).Warn("GUI: Frame display failed")
		return
	}

	a.ticks++
	if a.ticks%a.opts.FPS == 0 {
		a.status.SetText(viewer.Stats().String())
	}
}

func (a *Application) startTicker() {
	period := metrics.TickPeriod(a.opts.FPS)
	ticker := time.NewTicker(period)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fyne.Do(a.tick)
			case <-a.done:
				return
			}
		}
	}()

	a.logger.WithField("period", period.String()).Debug("GUI: Display loop started")
}

func (a *Application) ShowAndRun() {
	a.logger.Info("GUI: Showing main window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.startTicker()
	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.closeOnce.Do(func() {
		a.logger.Info("GUI: Cleaning up application resources")
		close(a.done)
		a.session.Viewer().Close()
	})
}
