package gui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"camera-studio/internal/core"
	"camera-studio/internal/settings"
	"camera-studio/internal/store"
)

const nameTakenMessage = "This name is already taken"

// PresetDialogs saves the control panel under a name and restores it
type PresetDialogs struct {
	window   fyne.Window
	session  *core.Session
	controls *ControlPanel
	logger   *logrus.Logger
}

func NewPresetDialogs(window fyne.Window, session *core.Session, controls *ControlPanel, logger *logrus.Logger) *PresetDialogs {
	return &PresetDialogs{
		window:   window,
		session:  session,
		controls: controls,
		logger:   logger,
	}
}

// Save asks for a name until a free one is given or the prompt is left blank
func (pd *PresetDialogs) Save() {
	pd.promptName(pd.controls.Adjustments(), "")
}

func (pd *PresetDialogs) promptName(adj settings.Adjustments, notice string) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Preset name")
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	if notice != "" {
		items = append(items, widget.NewFormItem("", widget.NewLabel(notice)))
	}

	dialog.ShowForm("Save settings", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		pd.save(entry.Text, adj)
	}, pd.window)
}

func (pd *PresetDialogs) save(name string, adj settings.Adjustments) {
	err := pd.session.SavePreset(context.Background(), name, adj)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrEmptyName):
	case errors.Is(err, store.ErrPresetExists):
		pd.promptName(adj, nameTakenMessage)
	default:
		pd.logger.WithField("error", err).Error("GUI: Saving preset failed")
		dialog.ShowError(err, pd.window)
	}
}

// Open lists the stored presets and applies the chosen one to the controls
func (pd *PresetDialogs) Open() {
	ctx := context.Background()

	names, err := pd.session.PresetNames(ctx)
	if err != nil {
		pd.logger.WithField("error", err).Error("GUI: Listing presets failed")
		dialog.ShowError(err, pd.window)
		return
	}

	choice := widget.NewSelect(names, nil)
	if len(names) > 0 {
		choice.SetSelectedIndex(0)
	}

	items := []*widget.FormItem{widget.NewFormItem("Preset", choice)}
	dialog.ShowForm("Open settings", "Open", "Cancel", items, func(ok bool) {
		if !ok || choice.Selected == "" {
			return
		}
		pd.apply(choice.Selected)
	}, pd.window)
}

func (pd *PresetDialogs) apply(name string) {
	adj, err := pd.session.LoadPreset(context.Background(), name)
	if err != nil {
		pd.logger.WithField("error", err).Error("GUI: Loading preset failed")
		dialog.ShowError(err, pd.window)
		return
	}
	pd.controls.Apply(adj)
	pd.logger.WithFields(logrus.Fields{
		"name":        name,
		"adjustments": adj.String(),
	}).Info("GUI: Preset applied")
}
