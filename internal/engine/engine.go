// Package engine runs the pipeline: load profiles, generate the frame
// sequence, render frames in parallel and export the animation.
package engine

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oceanviz/staircase/internal/analyzer"
	"github.com/oceanviz/staircase/internal/config"
	"github.com/oceanviz/staircase/internal/export"
	"github.com/oceanviz/staircase/internal/framegen"
	"github.com/oceanviz/staircase/internal/log"
	"github.com/oceanviz/staircase/internal/profile"
	"github.com/oceanviz/staircase/internal/render"
)

// Pipeline executes one scenario end to end.
type Pipeline struct {
	cfg      *config.Scenario
	detector analyzer.Detector
}

// New creates a pipeline for the scenario.
func New(cfg *config.Scenario) *Pipeline {
	return &Pipeline{cfg: cfg, detector: analyzer.NewGradientDetector()}
}

// Run performs one synchronous pass from data load to file export.
func (p *Pipeline) Run(ctx context.Context) error {
	startTime := time.Now()

	// 1. Load
	profiles, err := p.loadProfiles()
	if err != nil {
		return err
	}

	steps := make([][]float64, len(profiles))
	for i, prof := range profiles {
		found, err := p.detector.Detect(prof)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", prof.ID, err)
		}
		steps[i] = analyzer.Depths(found)
		log.Infof("%s: %d points, depth %.1f-%.1f dbar, %d staircase interfaces",
			prof.ID, len(prof.Points), prof.MinDepth(), prof.MaxDepth(), len(found))
	}

	// 2. Generate frames
	schedule, err := framegen.ScheduleFor(p.cfg.Easing)
	if err != nil {
		return err
	}
	seq, err := framegen.NewSequence(profiles, schedule, p.cfg.Frames)
	if err != nil {
		return err
	}

	acc := framegen.NewAccumulator(len(profiles))
	frames := make([]framegen.Frame, 0, seq.Len())
	for f, ok := seq.Next(); ok; f, ok = seq.Next() {
		acc.Add(f)
		frames = append(frames, f)
	}

	// 3. Render frames in parallel. Each frame only reads the shared frame
	// slice, so output never depends on worker scheduling.
	renderStart := time.Now()
	renderer := render.New(profiles, render.Options{
		Width:      p.cfg.Width,
		Height:     p.cfg.Height,
		Resolution: p.cfg.Resolution,
		Steps:      steps,
	})

	images := make([]*image.RGBA, len(frames))
	g, gctx := errgroup.WithContext(ctx)
	workers := runtime.NumCPU()
	if workers > len(frames) {
		workers = len(frames)
	}
	g.SetLimit(workers)

	for i := range frames {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			images[i] = renderer.Frame(frames, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("rendering frames: %w", err)
	}
	renderTime := time.Since(renderStart)

	// 4. Export
	exportStart := time.Now()
	exp := &export.Exporter{
		FramesDir:  p.cfg.Output.FramesDir,
		GIFPath:    p.cfg.Output.GIF,
		Comparison: p.cfg.Output.Comparison,
		SamplesCSV: p.cfg.Output.SamplesCSV,
		FPS:        p.cfg.FPS,
		Palette:    render.DarkTheme().Palette(),
	}

	if err := exp.WriteFrames(images); err != nil {
		return err
	}
	if err := exp.WriteGIF(images); err != nil {
		return err
	}
	if err := exp.WriteComparison(renderer.Comparison(frames)); err != nil {
		return err
	}
	if err := exp.WriteSamples(p.sampleRows(profiles, acc)); err != nil {
		return err
	}
	exportTime := time.Since(exportStart)

	log.Infof("run complete: %d frames in %.2fs (render %.2fs, export %.2fs, %.1f frames/s)",
		len(frames), time.Since(startTime).Seconds(), renderTime.Seconds(),
		exportTime.Seconds(), float64(len(frames))/time.Since(startTime).Seconds())
	return nil
}

// loadProfiles reads each configured profile, applies its depth window and
// carries the scenario labels over.
func (p *Pipeline) loadProfiles() ([]*profile.Profile, error) {
	var profiles []*profile.Profile
	for _, spec := range p.cfg.Profiles {
		prof, err := profile.Read(spec.Path)
		if err != nil {
			return nil, err
		}
		prof.ID = spec.ID
		prof.Label = spec.Label
		prof.Staircase = spec.Staircase
		if len(spec.DepthWindow) == 2 {
			prof, err = prof.Window(spec.DepthWindow[0], spec.DepthWindow[1])
			if err != nil {
				return nil, &profile.FileError{Path: spec.Path, Err: err}
			}
		}
		profiles = append(profiles, prof)
	}
	return profiles, nil
}

func (p *Pipeline) sampleRows(profiles []*profile.Profile, acc *framegen.Accumulator) []export.SampleRow {
	var rows []export.SampleRow
	for i, prof := range profiles {
		cast := ""
		if i < len(p.cfg.Profiles) {
			cast = p.cfg.Profiles[i].Cast
		}
		for frameIdx, s := range acc.Samples(i) {
			rows = append(rows, export.SampleRow{
				ProfileID: prof.ID,
				Cast:      cast,
				Frame:     frameIdx,
				Depth:     s.Depth,
				Temp:      s.Temp,
				Salt:      s.Salt,
			})
		}
	}
	return rows
}
