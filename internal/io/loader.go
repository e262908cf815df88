// Media classification, image loading and saving
package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// MediaKind is what an opened file is treated as
type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaVideo
	MediaPhoto
	MediaCamera
)

func (k MediaKind) String() string {
	switch k {
	case MediaVideo:
		return "video"
	case MediaPhoto:
		return "photo"
	case MediaCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// DefaultPhotoExtension is appended to save paths that carry none
const DefaultPhotoExtension = ".png"

var (
	VideoExtensions = []string{".mp4", ".mpg", ".mpeg"}
	PhotoExtensions = []string{".jpg", ".jpeg", ".bmp", ".png"}
)

// Classify sniffs the media kind from the file extension
func Classify(path string) MediaKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == "":
		return MediaUnknown
	case contains(VideoExtensions, ext):
		return MediaVideo
	case contains(PhotoExtensions, ext):
		return MediaPhoto
	default:
		return MediaUnknown
	}
}

// AllExtensions lists every openable extension, videos first
func AllExtensions() []string {
	all := make([]string, 0, len(VideoExtensions)+len(PhotoExtensions))
	all = append(all, VideoExtensions...)
	return append(all, PhotoExtensions...)
}

// EnsurePhotoExtension appends the default extension when path has none
// and replaces an extension gocv cannot encode.
func EnsurePhotoExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path + DefaultPhotoExtension
	}
	if !contains(PhotoExtensions, strings.ToLower(ext)) {
		return strings.TrimSuffix(path, ext) + DefaultPhotoExtension
	}
	return path
}

// ImageLoader reads and writes RGB frames as image files
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage returns the file decoded in OpenCV's native BGR order
func (il *ImageLoader) LoadImage(path string) (gocv.Mat, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if Classify(path) != MediaPhoto {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("failed to load image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// SaveImage writes an RGB or single-channel frame; the format follows the extension
func (il *ImageLoader) SaveImage(frame gocv.Mat, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if frame.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if Classify(path) != MediaPhoto {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	out := frame
	if frame.Channels() == 3 {
		bgr := gocv.NewMat()
		defer bgr.Close()
		if err := gocv.CvtColor(frame, &bgr, gocv.ColorRGBToBGR); err != nil {
			return fmt.Errorf("convert to BGR: %w", err)
		}
		out = bgr
	}

	if ok := gocv.IMWrite(path, out); !ok {
		return fmt.Errorf("failed to save image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    frame.Cols(),
		"height":   frame.Rows(),
		"channels": frame.Channels(),
	}).Info("Image saved successfully")

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
