// Package profile loads hydrographic depth profiles from CSV files and
// resolves temperature and salinity at arbitrary depths.
package profile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// FileError reports a missing or malformed input file. Loading never retries;
// the caller is expected to treat this as fatal.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("profile %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Point is a single measurement: depth (pressure, dbar) with the temperature
// and salinity recorded there.
type Point struct {
	Depth float64
	Temp  float64
	Salt  float64
}

// Profile is one hydrographic cast, sorted by increasing depth.
type Profile struct {
	ID        string
	Label     string
	Staircase bool
	Points    []Point

	tInterp interp.PiecewiseLinear
	sInterp interp.PiecewiseLinear
}

// New builds a profile from measurement points already in memory. Points are
// sorted by depth and duplicate depths collapse to the first occurrence.
func New(id string, points []Point) (*Profile, error) {
	p := &Profile{ID: id, Points: points}
	if err := p.fit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Read parses a profile CSV. The header must contain a depth column
// ("p", "depth" or "pressure"), "temp" and "salt", in any order; extra
// columns (such as a row index) are ignored. Rows with missing or
// non-numeric values are dropped.
func Read(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, &FileError{Path: path, Err: fmt.Errorf("reading header: %w", err)}
	}

	depthCol, tempCol, saltCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "p", "depth", "pressure":
			depthCol = i
		case "temp", "temperature":
			tempCol = i
		case "salt", "sal", "salinity":
			saltCol = i
		}
	}
	if depthCol < 0 || tempCol < 0 || saltCol < 0 {
		return nil, &FileError{Path: path, Err: fmt.Errorf("header %v is missing depth/temp/salt columns", header)}
	}

	var points []Point
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FileError{Path: path, Err: err}
		}
		p, ok := parsePoint(record, depthCol, tempCol, saltCol)
		if !ok {
			continue
		}
		points = append(points, p)
	}

	prof := &Profile{Points: points}
	if err := prof.fit(); err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return prof, nil
}

func parsePoint(record []string, depthCol, tempCol, saltCol int) (Point, bool) {
	max := depthCol
	if tempCol > max {
		max = tempCol
	}
	if saltCol > max {
		max = saltCol
	}
	if len(record) <= max {
		return Point{}, false
	}

	d, err1 := strconv.ParseFloat(strings.TrimSpace(record[depthCol]), 64)
	t, err2 := strconv.ParseFloat(strings.TrimSpace(record[tempCol]), 64)
	s, err3 := strconv.ParseFloat(strings.TrimSpace(record[saltCol]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return Point{}, false
	}
	if math.IsNaN(d) || math.IsNaN(t) || math.IsNaN(s) {
		return Point{}, false
	}
	return Point{Depth: d, Temp: t, Salt: s}, true
}

// fit sorts the points by depth, removes duplicate depths and builds the
// interpolators. Up-casts (recorded deepest-first) come out top-first here.
func (p *Profile) fit() error {
	sort.SliceStable(p.Points, func(i, j int) bool {
		return p.Points[i].Depth < p.Points[j].Depth
	})

	dedup := p.Points[:0]
	for i, pt := range p.Points {
		if i > 0 && pt.Depth == dedup[len(dedup)-1].Depth {
			continue
		}
		dedup = append(dedup, pt)
	}
	p.Points = dedup

	if len(p.Points) < 2 {
		return fmt.Errorf("need at least 2 measurement points, got %d", len(p.Points))
	}

	depths := make([]float64, len(p.Points))
	temps := make([]float64, len(p.Points))
	salts := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		depths[i] = pt.Depth
		temps[i] = pt.Temp
		salts[i] = pt.Salt
	}

	if err := p.tInterp.Fit(depths, temps); err != nil {
		return fmt.Errorf("fitting temperature: %w", err)
	}
	if err := p.sInterp.Fit(depths, salts); err != nil {
		return fmt.Errorf("fitting salinity: %w", err)
	}
	return nil
}

// MinDepth returns the shallowest measured depth.
func (p *Profile) MinDepth() float64 { return p.Points[0].Depth }

// MaxDepth returns the deepest measured depth.
func (p *Profile) MaxDepth() float64 { return p.Points[len(p.Points)-1].Depth }

// DepthAt maps scan progress in [0, 1] onto the profile's depth range.
func (p *Profile) DepthAt(progress float64) float64 {
	return p.MinDepth() + progress*(p.MaxDepth()-p.MinDepth())
}

// At returns the temperature and salinity at a depth via piecewise-linear
// interpolation between the two nearest measured depths. Depths at measured
// points resolve to the recorded values exactly; depths outside the profile's
// range clamp to the nearest end.
func (p *Profile) At(depth float64) (temp, salt float64) {
	if depth < p.MinDepth() {
		depth = p.MinDepth()
	} else if depth > p.MaxDepth() {
		depth = p.MaxDepth()
	}
	return p.tInterp.Predict(depth), p.sInterp.Predict(depth)
}

// Window returns a copy restricted to depths within [min, max]. The original
// profile is left untouched.
func (p *Profile) Window(min, max float64) (*Profile, error) {
	out := &Profile{ID: p.ID, Label: p.Label, Staircase: p.Staircase}
	for _, pt := range p.Points {
		if pt.Depth >= min && pt.Depth <= max {
			out.Points = append(out.Points, pt)
		}
	}
	if err := out.fit(); err != nil {
		return nil, fmt.Errorf("depth window [%g, %g]: %w", min, max, err)
	}
	return out, nil
}

// Resample returns the profile interpolated onto a regular depth grid with
// roughly the given vertical step. The grid always includes both endpoints.
// Used to draw smooth profile lines.
func (p *Profile) Resample(step float64) []Point {
	if step <= 0 {
		return p.Points
	}
	n := int(math.Ceil((p.MaxDepth()-p.MinDepth())/step)) + 1
	if n < 2 {
		n = 2
	}
	grid := make([]float64, n)
	floats.Span(grid, p.MinDepth(), p.MaxDepth())

	out := make([]Point, n)
	for i, d := range grid {
		t, s := p.At(d)
		out[i] = Point{Depth: d, Temp: t, Salt: s}
	}
	return out
}

// Extents returns the minimum and maximum of temperature and salinity over
// all measured points.
func (p *Profile) Extents() (tMin, tMax, sMin, sMax float64) {
	tMin, tMax = p.Points[0].Temp, p.Points[0].Temp
	sMin, sMax = p.Points[0].Salt, p.Points[0].Salt
	for _, pt := range p.Points[1:] {
		tMin = math.Min(tMin, pt.Temp)
		tMax = math.Max(tMax, pt.Temp)
		sMin = math.Min(sMin, pt.Salt)
		sMax = math.Max(sMax, pt.Salt)
	}
	return tMin, tMax, sMin, sMax
}
