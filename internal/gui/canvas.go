// Live video display
package gui

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"gocv.io/x/gocv"
)

// VideoCanvas shows processed frames at the fixed display size
type VideoCanvas struct {
	image *canvas.Image
	size  fyne.Size
}

func NewVideoCanvas(width, height int) *VideoCanvas {
	placeholder := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			placeholder.Set(x, y, color.RGBA{32, 32, 32, 255})
		}
	}

	img := canvas.NewImageFromImage(placeholder)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleFastest

	size := fyne.NewSize(float32(width), float32(height))
	img.SetMinSize(size)

	return &VideoCanvas{image: img, size: size}
}

func (vc *VideoCanvas) GetContainer() fyne.CanvasObject {
	return vc.image
}

// Update replaces the shown picture; must run on the UI thread
func (vc *VideoCanvas) Update(frame gocv.Mat) error {
	img, err := frameToImage(frame)
	if err != nil {
		return err
	}
	vc.image.Image = img
	vc.image.Refresh()
	return nil
}

func (vc *VideoCanvas) Current() image.Image {
	return vc.image.Image
}

// frameToImage converts an RGB or single-channel pipeline frame.
// gocv reads three-channel mats as BGR, so RGB frames are swapped first.
func frameToImage(frame gocv.Mat) (image.Image, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	switch frame.Channels() {
	case 1:
		return frame.ToImage()
	case 3:
		bgr := gocv.NewMat()
		defer bgr.Close()
		if err := gocv.CvtColor(frame, &bgr, gocv.ColorRGBToBGR); err != nil {
			return nil, fmt.Errorf("converting frame for display: %w", err)
		}
		return bgr.ToImage()
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", frame.Channels())
	}
}
