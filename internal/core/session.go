package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	mediaio "camera-studio/internal/io"
	"camera-studio/internal/settings"
	"camera-studio/internal/store"
)

// PhotoStore persists saved-photo metadata
type PhotoStore interface {
	CreatePhoto(ctx context.Context, path, name string, faces int) (store.PhotoRecord, error)
	PhotosByFaceCount(faces int) []store.PhotoRecord
	DeletePhoto(ctx context.Context, id int64) error
}

// PresetStore persists named adjustment presets
type PresetStore interface {
	CreatePreset(ctx context.Context, name string, adj settings.Adjustments) (settings.Preset, error)
	ListPresets(ctx context.Context) ([]settings.Preset, error)
	GetPreset(ctx context.Context, name string) (settings.Preset, error)
	EnsureDefaultPreset(ctx context.Context) error
}

// Session ties the viewer to photo capture, photo lookup and presets
type Session struct {
	viewer  *Viewer
	loader  *mediaio.ImageLoader
	photos  PhotoStore
	presets PresetStore
	logger  *logrus.Logger
}

func NewSession(viewer *Viewer, loader *mediaio.ImageLoader, photos PhotoStore, presets PresetStore, logger *logrus.Logger) *Session {
	return &Session{
		viewer:  viewer,
		loader:  loader,
		photos:  photos,
		presets: presets,
		logger:  logger,
	}
}

func (s *Session) Viewer() *Viewer {
	return s.viewer
}

func (s *Session) HasDetector() bool {
	return s.viewer.pipeline.HasDetector()
}

// CapturePhoto writes the processed current frame to path and records it
// with the face count of the unprocessed frame. The returned record holds
// the final path, which gains an extension when path had none.
func (s *Session) CapturePhoto(ctx context.Context, path string, adj settings.Adjustments) (store.PhotoRecord, error) {
	path = mediaio.EnsurePhotoExtension(path)

	frame, faces, err := s.viewer.Snapshot(adj)
	if err != nil {
		return store.PhotoRecord{}, fmt.Errorf("capturing frame: %w", err)
	}
	defer frame.Close()

	if err := s.loader.SaveImage(frame, path); err != nil {
		return store.PhotoRecord{}, err
	}

	rec, err := s.photos.CreatePhoto(ctx, path, filepath.Base(path), faces)
	if err != nil {
		return store.PhotoRecord{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"filepath": path,
		"faces":    faces,
	}).Info("SESSION: Photo captured")
	return rec, nil
}

// FindPhotos lists recorded photos with exactly faces faces
func (s *Session) FindPhotos(faces int) ([]store.PhotoRecord, error) {
	recs := s.photos.PhotosByFaceCount(faces)
	if len(recs) == 0 {
		return nil, ErrNoPhotos
	}
	return recs, nil
}

// OpenPhoto shows a recorded photo. When the file is gone the record is
// deleted and ErrPhotoMissing is returned.
func (s *Session) OpenPhoto(ctx context.Context, rec store.PhotoRecord) error {
	if s.viewer.Mode() == ModeVideo {
		s.viewer.CloseVideo()
	}

	_, statErr := os.Stat(rec.Path)
	var openErr error
	if statErr == nil {
		_, openErr = s.viewer.Open(rec.Path)
	}
	if statErr == nil && openErr == nil {
		return nil
	}

	s.logger.WithFields(logrus.Fields{
		"id":       rec.ID,
		"filepath": rec.Path,
		"stat":     statErr,
		"open":     openErr,
	}).Warn("SESSION: Recorded photo unavailable, dropping record")

	if err := s.photos.DeletePhoto(ctx, rec.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w (cleanup failed: %v)", ErrPhotoMissing, err)
	}
	return ErrPhotoMissing
}

// PresetNames lists presets, creating the default one when there are none
func (s *Session) PresetNames(ctx context.Context) ([]string, error) {
	if err := s.presets.EnsureDefaultPreset(ctx); err != nil {
		return nil, err
	}

	presets, err := s.presets.ListPresets(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names, nil
}

// SavePreset stores adj under name; see store.ErrEmptyName and store.ErrPresetExists
func (s *Session) SavePreset(ctx context.Context, name string, adj settings.Adjustments) error {
	_, err := s.presets.CreatePreset(ctx, name, adj)
	return err
}

func (s *Session) LoadPreset(ctx context.Context, name string) (settings.Adjustments, error) {
	p, err := s.presets.GetPreset(ctx, name)
	if err != nil {
		return settings.Adjustments{}, err
	}
	return p.Adjustments.Normalize(), nil
}
