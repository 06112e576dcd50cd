// Package export writes the run's artifacts: per-frame PNGs, the assembled
// GIF, the static comparison image and the sampled-points CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
)

// IOError reports an unwritable output path. Fatal; the pipeline does not
// retry writes.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Exporter serializes rendered frames to the configured output paths.
type Exporter struct {
	FramesDir  string
	GIFPath    string
	Comparison string
	SamplesCSV string
	FPS        int
	Palette    color.Palette
}

// WriteFrames writes each frame as a zero-padded PNG into FramesDir. The
// directory is recreated so frames from a previous, longer run cannot leak
// into the new animation.
func (e *Exporter) WriteFrames(frames []*image.RGBA) error {
	if err := os.RemoveAll(e.FramesDir); err != nil {
		return &IOError{Path: e.FramesDir, Err: err}
	}
	if err := os.MkdirAll(e.FramesDir, 0755); err != nil {
		return &IOError{Path: e.FramesDir, Err: err}
	}
	for i, img := range frames {
		path := filepath.Join(e.FramesDir, fmt.Sprintf("frame-%03d.png", i))
		if err := writePNG(path, img); err != nil {
			return err
		}
	}
	return nil
}

// WriteGIF assembles the frames into an animated GIF at the configured fps.
func (e *Exporter) WriteGIF(frames []*image.RGBA) error {
	if len(frames) == 0 {
		return &IOError{Path: e.GIFPath, Err: fmt.Errorf("no frames to encode")}
	}

	delay := 8 // 12 fps
	if e.FPS > 0 {
		delay = 100 / e.FPS // GIF delays are in 100ths of a second
	}
	if delay < 2 {
		delay = 2
	}

	anim := &gif.GIF{}
	for _, img := range frames {
		pal := image.NewPaletted(img.Bounds(), e.Palette)
		draw.Draw(pal, img.Bounds(), img, img.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := os.MkdirAll(filepath.Dir(e.GIFPath), 0755); err != nil {
		return &IOError{Path: e.GIFPath, Err: err}
	}
	f, err := os.Create(e.GIFPath)
	if err != nil {
		return &IOError{Path: e.GIFPath, Err: err}
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return &IOError{Path: e.GIFPath, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Path: e.GIFPath, Err: err}
	}
	return nil
}

// WriteComparison writes the static comparison figure.
func (e *Exporter) WriteComparison(img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(e.Comparison), 0755); err != nil {
		return &IOError{Path: e.Comparison, Err: err}
	}
	return writePNG(e.Comparison, img)
}

// SampleRow is one accumulated sample as written to the CSV.
type SampleRow struct {
	ProfileID string
	Cast      string
	Frame     int
	Depth     float64
	Temp      float64
	Salt      float64
}

// WriteSamples writes the accumulated samples, one row per profile per frame.
func (e *Exporter) WriteSamples(rows []SampleRow) error {
	if err := os.MkdirAll(filepath.Dir(e.SamplesCSV), 0755); err != nil {
		return &IOError{Path: e.SamplesCSV, Err: err}
	}
	f, err := os.Create(e.SamplesCSV)
	if err != nil {
		return &IOError{Path: e.SamplesCSV, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"profile", "cast", "frame", "p", "temp", "salt"}); err != nil {
		return &IOError{Path: e.SamplesCSV, Err: err}
	}
	for _, r := range rows {
		record := []string{
			r.ProfileID,
			r.Cast,
			strconv.Itoa(r.Frame),
			strconv.FormatFloat(r.Depth, 'f', -1, 64),
			strconv.FormatFloat(r.Temp, 'f', -1, 64),
			strconv.FormatFloat(r.Salt, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return &IOError{Path: e.SamplesCSV, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &IOError{Path: e.SamplesCSV, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Path: e.SamplesCSV, Err: err}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return &IOError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}
