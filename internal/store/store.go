// SQLite persistence for adjustment presets and saved-photo metadata
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"camera-studio/internal/settings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPresetExists = errors.New("preset name already taken")
	ErrEmptyName    = errors.New("preset name is empty")
)

// DefaultPresetName is created when the preset list is first opened empty
const DefaultPresetName = "default"

const schema = `
CREATE TABLE IF NOT EXISTS presets (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	name            TEXT    NOT NULL UNIQUE,
	grayscale       INTEGER NOT NULL DEFAULT 0,
	invert          INTEGER NOT NULL DEFAULT 0,
	flip_vertical   INTEGER NOT NULL DEFAULT 0,
	flip_horizontal INTEGER NOT NULL DEFAULT 0,
	face_overlay    INTEGER NOT NULL DEFAULT 0,
	brightness      INTEGER NOT NULL DEFAULT 50,
	contrast        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS photos (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	path  TEXT    NOT NULL,
	name  TEXT    NOT NULL,
	faces INTEGER NOT NULL
);`

// PhotoRecord is the metadata written alongside a captured photo
type PhotoRecord struct {
	ID    int64
	Path  string
	Name  string
	Faces int
}

// Store wraps the database file and an in-memory face-count index over photos
type Store struct {
	db     *sql.DB
	logger *logrus.Logger

	mu     sync.RWMutex
	byFace map[int][]PhotoRecord
}

// Open creates the schema if needed and loads the photo index
func Open(ctx context.Context, path string, logger *logrus.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// a single connection keeps writes serialized on the file
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
		byFace: make(map[int][]PhotoRecord),
	}
	if err := s.loadIndex(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithField("path", path).Info("STORE: Database opened")
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreatePreset stores a named snapshot. Names that are blank once spaces are
// removed are rejected, as are names already in use.
func (s *Store) CreatePreset(ctx context.Context, name string, adj settings.Adjustments) (settings.Preset, error) {
	if strings.ReplaceAll(name, " ", "") == "" {
		return settings.Preset{}, ErrEmptyName
	}
	adj = adj.Normalize()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO presets (name, grayscale, invert, flip_vertical, flip_horizontal, face_overlay, brightness, contrast)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name, adj.Grayscale, adj.Invert, adj.FlipVertical, adj.FlipHorizontal, adj.FaceOverlay, adj.Brightness, adj.Contrast)
	if err != nil {
		if isUniqueViolation(err) {
			return settings.Preset{}, fmt.Errorf("%q: %w", name, ErrPresetExists)
		}
		return settings.Preset{}, fmt.Errorf("inserting preset: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return settings.Preset{}, fmt.Errorf("reading preset id: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":          id,
		"name":        name,
		"adjustments": adj.String(),
	}).Info("STORE: Preset created")

	return settings.Preset{ID: id, Name: name, Adjustments: adj}, nil
}

// ListPresets returns presets in creation order
func (s *Store) ListPresets(ctx context.Context) ([]settings.Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, grayscale, invert, flip_vertical, flip_horizontal, face_overlay, brightness, contrast
		 FROM presets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}
	defer rows.Close()

	presets := make([]settings.Preset, 0)
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, s.checkLevels(p))
	}
	return presets, rows.Err()
}

func (s *Store) GetPreset(ctx context.Context, name string) (settings.Preset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, grayscale, invert, flip_vertical, flip_horizontal, face_overlay, brightness, contrast
		 FROM presets WHERE name = ?`, name)

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.Preset{}, fmt.Errorf("preset %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return settings.Preset{}, err
	}
	return s.checkLevels(p), nil
}

// checkLevels clamps rows whose levels were written outside the slider range
func (s *Store) checkLevels(p settings.Preset) settings.Preset {
	if err := p.Adjustments.Validate(); err != nil {
		s.logger.WithFields(logrus.Fields{
			"name":  p.Name,
			"error": err,
		}).Warn("STORE: Preset levels out of range, clamping")
		p.Adjustments = p.Adjustments.Normalize()
	}
	return p
}

// EnsureDefaultPreset creates the default preset when none exist
func (s *Store) EnsureDefaultPreset(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM presets`).Scan(&count); err != nil {
		return fmt.Errorf("counting presets: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := s.CreatePreset(ctx, DefaultPresetName, settings.Default())
	if errors.Is(err, ErrPresetExists) {
		return nil
	}
	return err
}

// CreatePhoto records a written photo and adds it to the face-count index
func (s *Store) CreatePhoto(ctx context.Context, path, name string, faces int) (PhotoRecord, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO photos (path, name, faces) VALUES (?, ?, ?)`, path, name, faces)
	if err != nil {
		return PhotoRecord{}, fmt.Errorf("inserting photo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return PhotoRecord{}, fmt.Errorf("reading photo id: %w", err)
	}

	rec := PhotoRecord{ID: id, Path: path, Name: name, Faces: faces}

	s.mu.Lock()
	s.byFace[faces] = append(s.byFace[faces], rec)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"id":    id,
		"path":  path,
		"faces": faces,
	}).Info("STORE: Photo recorded")

	return rec, nil
}

// PhotosByFaceCount is served from the index, oldest first
func (s *Store) PhotosByFaceCount(faces int) []PhotoRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.byFace[faces]
	result := make([]PhotoRecord, len(matches))
	copy(result, matches)
	return result
}

// FaceCounts lists the distinct face counts that have photos
func (s *Store) FaceCounts() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make([]int, 0, len(s.byFace))
	for n := range s.byFace {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	return counts
}

func (s *Store) DeletePhoto(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting photo %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("photo %d: %w", id, ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for faces, recs := range s.byFace {
		for i, rec := range recs {
			if rec.ID != id {
				continue
			}
			s.byFace[faces] = append(recs[:i:i], recs[i+1:]...)
			if len(s.byFace[faces]) == 0 {
				delete(s.byFace, faces)
			}
			break
		}
	}

	s.logger.WithField("id", id).Info("STORE: Photo record deleted")
	return nil
}

func (s *Store) loadIndex(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, path, name, faces FROM photos ORDER BY id`)
	if err != nil {
		return fmt.Errorf("loading photo index: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var rec PhotoRecord
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Name, &rec.Faces); err != nil {
			return fmt.Errorf("scanning photo: %w", err)
		}
		s.byFace[rec.Faces] = append(s.byFace[rec.Faces], rec)
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loading photo index: %w", err)
	}

	s.logger.WithField("photos", count).Debug("STORE: Photo index loaded")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (settings.Preset, error) {
	var p settings.Preset
	a := &p.Adjustments
	err := row.Scan(&p.ID, &p.Name, &a.Grayscale, &a.Invert, &a.FlipVertical, &a.FlipHorizontal,
		&a.FaceOverlay, &a.Brightness, &a.Contrast)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning preset: %w", err)
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
