// Menu handler for capture and file actions
package gui

import (
	"context"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"camera-studio/internal/core"
	mediaio "camera-studio/internal/io"
	"camera-studio/internal/store"
)

// MenuHandler runs the file dialogs behind the main buttons
type MenuHandler struct {
	window   fyne.Window
	session  *core.Session
	controls *ControlPanel
	logger   *logrus.Logger

	onMediaOpened func(string, mediaio.MediaKind)
	onPhotoSaved  func(store.PhotoRecord)
}

func NewMenuHandler(window fyne.Window, session *core.Session, controls *ControlPanel, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window:   window,
		session:  session,
		controls: controls,
		logger:   logger,
	}
}

func (mh *MenuHandler) GetMainMenu(onLookup, onQuit func()) *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Make photo...", mh.MakePhoto),
		fyne.NewMenuItem("Open...", mh.OpenMedia),
		fyne.NewMenuItem("Lookup by face count...", onLookup),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", onQuit),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

// OpenMedia lets the user pick a video or a photo to show instead of the camera
func (mh *MenuHandler) OpenMedia() {
	mh.logger.Debug("GUI: Opening file dialog for media selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		filepath := reader.URI().Path()
		reader.Close()

		kind, err := mh.session.Viewer().Open(filepath)
		if err != nil {
			mh.showError("Failed to Open File", err)
			return
		}
		if kind == mediaio.MediaUnknown {
			return
		}

		mh.logger.WithFields(logrus.Fields{
			"filepath": filepath,
			"kind":     kind.String(),
		}).Info("GUI: Media opened")

		if mh.onMediaOpened != nil {
			mh.onMediaOpened(filepath, kind)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(mediaio.AllExtensions()))
	fileDialog.Show()
}

// MakePhoto saves the current processed frame and records its face count
func (mh *MenuHandler) MakePhoto() {
	adj := mh.controls.Adjustments()

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		chosen := writer.URI().Path()
		writer.Close()

		rec, err := mh.session.CapturePhoto(context.Background(), chosen, adj)
		if rec.Path != chosen {
			removeIfEmpty(chosen)
		}
		if err != nil {
			mh.showError("Failed to Save Photo", err)
			return
		}

		if mh.onPhotoSaved != nil {
			mh.onPhotoSaved(rec)
		}
	}, mh.window)

	fileDialog.SetFileName("photo" + mediaio.DefaultPhotoExtension)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(mediaio.PhotoExtensions))
	fileDialog.Show()
}

// removeIfEmpty drops the placeholder the save dialog created when the
// photo was written under a different name
func removeIfEmpty(path string) {
	if info, err := os.Stat(path); err == nil && info.Size() == 0 {
		os.Remove(path)
	}
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Camera Studio"),
		widget.NewSeparator(),
		widget.NewLabel("Live camera and video viewer with"),
		widget.NewLabel("per-frame adjustments, face detection"),
		widget.NewLabel("and saved presets."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne v2.6, and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(360, 220))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithField("error", err).Error("GUI: " + title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onMediaOpened func(string, mediaio.MediaKind), onPhotoSaved func(store.PhotoRecord)) {
	mh.onMediaOpened = onMediaOpened
	mh.onPhotoSaved = onPhotoSaved
}
