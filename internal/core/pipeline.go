// internal/core/pipeline.go
// Fixed-order per-frame transform pipeline
package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"camera-studio/internal/algorithms"
	"camera-studio/internal/faces"
	"camera-studio/internal/settings"
)

// Pipeline applies the standard transform chain to one frame per call.
// It keeps no per-frame state, so a single instance serves every tick.
type Pipeline struct {
	registry *algorithms.Registry
	detector faces.Detector
	logger   *logrus.Logger
}

// NewPipeline builds the standard chain. detector may be nil, which
// disables the face overlay and makes CountFaces report zero.
func NewPipeline(detector faces.Detector, logger *logrus.Logger) *Pipeline {
	registry := algorithms.Standard(detector)

	steps := make([]string, 0, len(registry.Names()))
	for _, t := range registry.Ordered() {
		steps = append(steps, t.Name()+": "+t.Description())
	}
	logger.WithFields(logrus.Fields{
		"steps":    steps,
		"detector": detector != nil,
	}).Debug("PIPELINE: Chain ready")

	return &Pipeline{
		registry: registry,
		detector: detector,
		logger:   logger,
	}
}

// Process returns a new frame; frame itself is left untouched
func (p *Pipeline) Process(frame gocv.Mat, adj settings.Adjustments) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.NewMat(), fmt.Errorf("cannot process empty frame")
	}
	adj = adj.Normalize()

	current := frame.Clone()
	for _, t := range p.registry.Ordered() {
		if !t.Enabled(adj) {
			continue
		}

		next, err := t.Apply(current, adj)
		current.Close()
		if err != nil {
			next.Close()
			p.logger.WithFields(logrus.Fields{
				"transform": t.Name(),
				"error":     err,
			}).Error("PIPELINE: Transform failed")
			return gocv.NewMat(), fmt.Errorf("%s: %w", t.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Steps names the transforms that would run for adj, in order
func (p *Pipeline) Steps(adj settings.Adjustments) []string {
	adj = adj.Normalize()
	steps := make([]string, 0)
	for _, t := range p.registry.Ordered() {
		if t.Enabled(adj) {
			steps = append(steps, t.Name())
		}
	}
	return steps
}

// CountFaces runs the overlay detector with the same parameters over frame
func (p *Pipeline) CountFaces(frame gocv.Mat) (int, error) {
	if p.detector == nil {
		return 0, nil
	}
	n, err := faces.Count(p.detector, frame)
	if err != nil {
		return 0, fmt.Errorf("counting faces: %w", err)
	}
	return n, nil
}

// HasDetector reports whether face overlay and counting are available
func (p *Pipeline) HasDetector() bool {
	return p.detector != nil
}
