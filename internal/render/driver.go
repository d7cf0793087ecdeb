// driver.go - Render-Treiber: bindet Scene, Camera, ImagePlane und
// Scheduler an eine einzige Konfigurationsoberflaeche
//
// Jede vom Render-Treiber erkannte Option wird hier zu einem
// Options-Feld mit demselben Default-Verhalten wie internal/envconfig
// (ausser Threads, hier 1), aber ohne eine Env-Abhaengigkeit einzugehen -- Render() kann aus
// cmd/manta, aus Tests oder spaeter aus einer eigenen SDL-Schicht
// heraus aufgerufen werden.
package render

import (
	"context"
	"fmt"

	"github.com/mantaray/manta/internal/camera"
	"github.com/mantaray/manta/internal/imaging"
	"github.com/mantaray/manta/internal/path"
	"github.com/mantaray/manta/internal/schedule"
	"github.com/mantaray/manta/internal/scene"
	"github.com/mantaray/manta/internal/vecmath"
)

// Options collects every recognized render driver option.
type Options struct {
	Width, Height int

	Threads             int
	Multithreaded       bool
	DeterministicSeed   *uint64
	Background          vecmath.RGB
	DirectLightSampling bool
	RenderPattern       schedule.Pattern
	TileSize            int

	SamplesPerPixel      int
	MaxDepth             int
	MaxDepthTransmission int
	RouletteStartDepth   int

	Filter imaging.Filter
}

// DefaultOptions returns the same defaults internal/envconfig falls
// back to when no MANTA_* variable overrides them, except Threads,
// which is 1 here while envconfig defaults to runtime.NumCPU().
func DefaultOptions() Options {
	return Options{
		Threads:              1,
		Multithreaded:        true,
		Background:           vecmath.RGB{},
		DirectLightSampling:  true,
		RenderPattern:        schedule.PatternSpiral,
		TileSize:             64,
		SamplesPerPixel:      32,
		MaxDepth:             4,
		MaxDepthTransmission: 16,
		RouletteStartDepth:   3,
		Filter:               imaging.NewGaussianFilter(2, 2),
	}
}

// validate rejects contradictory or out-of-range options -- zero
// threads, zero resolution, and a few internal consistency checks --
// at configure time, before any tile is scheduled.
func (o Options) validate() error {
	switch {
	case o.Width <= 0:
		return &ConfigError{Option: "Width", Reason: "must be positive"}
	case o.Height <= 0:
		return &ConfigError{Option: "Height", Reason: "must be positive"}
	case o.SamplesPerPixel <= 0:
		return &ConfigError{Option: "SamplesPerPixel", Reason: "must be positive"}
	case o.TileSize <= 0:
		return &ConfigError{Option: "TileSize", Reason: "must be positive"}
	case o.MaxDepth < 0:
		return &ConfigError{Option: "MaxDepth", Reason: "must be non-negative"}
	case o.MaxDepthTransmission < o.MaxDepth:
		return &ConfigError{Option: "MaxDepthTransmission", Reason: "must be >= MaxDepth"}
	case o.Filter == nil:
		return &ConfigError{Option: "Filter", Reason: "must not be nil"}
	}
	return nil
}

// Render configures and runs a full tiled render of s as seen by cam,
// returning the finished image plane. The caller is responsible for
// finalizing and encoding the result (internal/output).
func Render(ctx context.Context, s *scene.Scene, cam *camera.Camera, opts Options) (*imaging.ImagePlane, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	threads := opts.Threads
	if !opts.Multithreaded {
		threads = 1
	}
	if threads <= 0 {
		threads = 1
	}

	plane := imaging.NewImagePlane(opts.Width, opts.Height, opts.Filter)

	schedOpts := schedule.Options{
		WorkerCount:     threads,
		SamplesPerPixel: opts.SamplesPerPixel,
		TileSize:        opts.TileSize,
		Pattern:         opts.RenderPattern,
		PathOptions: path.Options{
			MaxDepth:             opts.MaxDepth,
			MaxDepthTransmission: opts.MaxDepthTransmission,
			DirectLightSampling:  opts.DirectLightSampling,
			RouletteStartDepth:   opts.RouletteStartDepth,
			Background:           opts.Background,
		},
		DeterministicSeed: opts.DeterministicSeed,
	}

	if err := schedule.Run(ctx, s, cam, plane, schedOpts); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return plane, nil
}
