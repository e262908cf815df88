// Advanced settings panel: the seven frame adjustments and preset buttons
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"camera-studio/internal/settings"
)

type ControlPanel struct {
	container *fyne.Container

	grayscale      *widget.Check
	invert         *widget.Check
	flipVertical   *widget.Check
	flipHorizontal *widget.Check
	faceOverlay    *widget.Check

	brightness      *widget.Slider
	contrast        *widget.Slider
	brightnessValue *widget.Label
	contrastValue   *widget.Label

	saveBtn *widget.Button
	openBtn *widget.Button

	onSavePreset func()
	onOpenPreset func()
}

func NewControlPanel() *ControlPanel {
	panel := &ControlPanel{}
	panel.initializeUI()
	panel.Apply(settings.Default())
	panel.container.Hide()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	cp.grayscale = widget.NewCheck("Grayscale", nil)
	cp.invert = widget.NewCheck("Invert colors", nil)
	cp.flipVertical = widget.NewCheck("Flip vertically", nil)
	cp.flipHorizontal = widget.NewCheck("Flip horizontally", nil)
	cp.faceOverlay = widget.NewCheck("Show faces", nil)

	cp.brightnessValue = widget.NewLabel("")
	cp.brightness = newLevelSlider(cp.brightnessValue)
	cp.contrastValue = widget.NewLabel("")
	cp.contrast = newLevelSlider(cp.contrastValue)

	cp.saveBtn = widget.NewButtonWithIcon("Save settings", theme.DocumentSaveIcon(), func() {
		if cp.onSavePreset != nil {
			cp.onSavePreset()
		}
	})
	cp.openBtn = widget.NewButtonWithIcon("Open settings", theme.FolderOpenIcon(), func() {
		if cp.onOpenPreset != nil {
			cp.onOpenPreset()
		}
	})

	toggles := container.NewGridWithColumns(2,
		cp.grayscale,
		cp.invert,
		cp.flipVertical,
		cp.flipHorizontal,
		cp.faceOverlay,
	)

	levels := widget.NewForm(
		widget.NewFormItem("Brightness", container.NewBorder(nil, nil, nil, cp.brightnessValue, cp.brightness)),
		widget.NewFormItem("Contrast", container.NewBorder(nil, nil, nil, cp.contrastValue, cp.contrast)),
	)

	cp.container = container.NewVBox(
		widget.NewCard("Adjustments", "", container.NewVBox(toggles, levels)),
		container.NewGridWithColumns(2, cp.saveBtn, cp.openBtn),
	)
}

func newLevelSlider(value *widget.Label) *widget.Slider {
	slider := widget.NewSlider(settings.MinLevel, settings.MaxLevel)
	slider.Step = 1
	slider.OnChanged = func(v float64) {
		value.SetText(levelText(v))
	}
	return slider
}

func levelText(v float64) string {
	return fmt.Sprintf("%3d", int(v))
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlPanel) SetVisible(visible bool) {
	if visible {
		cp.container.Show()
	} else {
		cp.container.Hide()
	}
}

func (cp *ControlPanel) Visible() bool {
	return cp.container.Visible()
}

// Adjustments reads the current widget values
func (cp *ControlPanel) Adjustments() settings.Adjustments {
	return settings.NewBuilder().
		Grayscale(cp.grayscale.Checked).
		Invert(cp.invert.Checked).
		FlipVertical(cp.flipVertical.Checked).
		FlipHorizontal(cp.flipHorizontal.Checked).
		FaceOverlay(cp.faceOverlay.Checked).
		Brightness(int(cp.brightness.Value)).
		Contrast(int(cp.contrast.Value)).
		Build()
}

// Apply sets every control from adj
func (cp *ControlPanel) Apply(adj settings.Adjustments) {
	adj = adj.Normalize()

	cp.grayscale.SetChecked(adj.Grayscale)
	cp.invert.SetChecked(adj.Invert)
	cp.flipVertical.SetChecked(adj.FlipVertical)
	cp.flipHorizontal.SetChecked(adj.FlipHorizontal)
	cp.faceOverlay.SetChecked(adj.FaceOverlay)
	cp.brightness.SetValue(float64(adj.Brightness))
	cp.contrast.SetValue(float64(adj.Contrast))
	cp.brightnessValue.SetText(levelText(cp.brightness.Value))
	cp.contrastValue.SetText(levelText(cp.contrast.Value))
}

// SetFaceOverlayAvailable disables the face toggle when no detector loaded
func (cp *ControlPanel) SetFaceOverlayAvailable(available bool) {
	if available {
		cp.faceOverlay.Enable()
		return
	}
	cp.faceOverlay.SetChecked(false)
	cp.faceOverlay.Disable()
}

func (cp *ControlPanel) SetCallbacks(onSavePreset, onOpenPreset func()) {
	cp.onSavePreset = onSavePreset
	cp.onOpenPreset = onOpenPreset
}
