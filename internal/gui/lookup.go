package gui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"camera-studio/internal/core"
	mediaio "camera-studio/internal/io"
	"camera-studio/internal/store"
)

const (
	thumbnailWidth  = 240
	thumbnailHeight = 180
)

// FaceLookup finds saved photos by how many faces they contained
type FaceLookup struct {
	window  fyne.Window
	session *core.Session
	logger  *logrus.Logger

	onPhotoOpened func(store.PhotoRecord)
}

func NewFaceLookup(window fyne.Window, session *core.Session, logger *logrus.Logger) *FaceLookup {
	return &FaceLookup{
		window:  window,
		session: session,
		logger:  logger,
	}
}

func (fl *FaceLookup) SetCallback(onPhotoOpened func(store.PhotoRecord)) {
	fl.onPhotoOpened = onPhotoOpened
}

func (fl *FaceLookup) Show() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("0")
	entry.Validator = validateFaceCount

	items := []*widget.FormItem{widget.NewFormItem("Faces", entry)}
	dialog.ShowForm("Lookup by face count", "Find", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		n, err := parseFaceCount(entry.Text)
		if err != nil {
			return
		}
		fl.find(n)
	}, fl.window)
}

func parseFaceCount(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("enter a whole number")
	}
	if n < 0 {
		return 0, fmt.Errorf("face count cannot be negative")
	}
	return n, nil
}

func validateFaceCount(text string) error {
	_, err := parseFaceCount(text)
	return err
}

func (fl *FaceLookup) find(faces int) {
	recs, err := fl.session.FindPhotos(faces)
	if errors.Is(err, core.ErrNoPhotos) {
		dialog.ShowInformation("Lookup by face count", "No photo with that many faces", fl.window)
		return
	}

	labels, byLabel := photoLabels(recs)

	preview := canvas.NewImageFromImage(nil)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(thumbnailWidth, thumbnailHeight))

	choice := widget.NewSelect(labels, func(label string) {
		fl.showThumbnail(preview, byLabel[label])
	})
	choice.SetSelectedIndex(0)

	content := container.NewVBox(choice, preview)
	title := fmt.Sprintf("Photos with %d faces", faces)
	dialog.ShowCustomConfirm(title, "Open", "Cancel", content, func(ok bool) {
		if !ok || choice.Selected == "" {
			return
		}
		fl.open(byLabel[choice.Selected])
	}, fl.window)
}

func (fl *FaceLookup) showThumbnail(preview *canvas.Image, rec store.PhotoRecord) {
	img, err := mediaio.Thumbnail(rec.Path, thumbnailWidth, thumbnailHeight)
	if err != nil {
		fl.logger.WithFields(logrus.Fields{
			"filepath": rec.Path,
			"error":    err,
		}).Debug("GUI: No thumbnail")
		preview.Image = nil
	} else {
		preview.Image = img
	}
	preview.Refresh()
}

func (fl *FaceLookup) open(rec store.PhotoRecord) {
	err := fl.session.OpenPhoto(context.Background(), rec)
	if errors.Is(err, core.ErrPhotoMissing) {
		dialog.ShowInformation("Photo not found",
			fmt.Sprintf("%s was moved or deleted.\nIt has been removed from the list.", rec.Name), fl.window)
		return
	}
	if err != nil {
		fl.logger.WithField("error", err).Error("GUI: Opening photo failed")
		dialog.ShowError(err, fl.window)
		return
	}
	if fl.onPhotoOpened != nil {
		fl.onPhotoOpened(rec)
	}
}

// photoLabels names each record for the picker, suffixing repeats with their id
func photoLabels(recs []store.PhotoRecord) ([]string, map[string]store.PhotoRecord) {
	seen := make(map[string]int, len(recs))
	for _, rec := range recs {
		seen[rec.Name]++
	}

	labels := make([]string, 0, len(recs))
	byLabel := make(map[string]store.PhotoRecord, len(recs))
	for _, rec := range recs {
		label := rec.Name
		if seen[rec.Name] > 1 {
			label = fmt.Sprintf("%s (#%d)", rec.Name, rec.ID)
		}
		labels = append(labels, label)
		byLabel[label] = rec
	}
	return labels, byLabel
}
