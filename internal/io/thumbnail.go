package io

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Thumbnail decodes the image at path and fits it inside width x height
func Thumbnail(path string, width, height int) (image.Image, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return imaging.Fit(src, width, height, imaging.Lanczos), nil
}
