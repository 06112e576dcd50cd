// Package render draws the animation frames: two depth-profile panels with a
// moving sampling marker on top, two cumulative T-S scatter panels below.
package render

import (
	"fmt"
	"image"

	"github.com/oceanviz/staircase/internal/framegen"
	"github.com/oceanviz/staircase/internal/profile"
)

// Options control the canvas and styling of a Renderer.
type Options struct {
	Width      int
	Height     int
	Resolution float64     // vertical resample step for profile lines
	Theme      Theme       // zero value selects the dark theme
	Steps      [][]float64 // detected interface depths per profile, may be nil
}

type axis struct{ min, max float64 }

func (a axis) span() float64 { return a.max - a.min }

// panel maps data coordinates onto a pixel rectangle. flipY is set for depth
// panels, where depth grows downward.
type panel struct {
	rect  image.Rectangle
	x, y  axis
	flipY bool
}

func (p panel) px(v float64) float64 {
	return float64(p.rect.Min.X) + (v-p.x.min)/p.x.span()*float64(p.rect.Dx())
}

func (p panel) py(v float64) float64 {
	t := (v - p.y.min) / p.y.span()
	if p.flipY {
		return float64(p.rect.Min.Y) + t*float64(p.rect.Dy())
	}
	return float64(p.rect.Max.Y) - t*float64(p.rect.Dy())
}

// Renderer draws frames for a fixed set of profiles. All per-profile axis
// ranges are computed once so every frame shares the same mapping.
type Renderer struct {
	opts     Options
	profiles []*profile.Profile
	lines    [][]profile.Point
	tAxes    []axis
	sAxes    []axis
	dAxes    []axis
}

// New prepares a renderer for the given profiles.
func New(profiles []*profile.Profile, opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.Resolution <= 0 {
		opts.Resolution = 0.5
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = DarkTheme()
	}

	r := &Renderer{opts: opts, profiles: profiles}
	for _, p := range profiles {
		r.lines = append(r.lines, p.Resample(opts.Resolution))
		tMin, tMax, sMin, sMax := p.Extents()
		r.tAxes = append(r.tAxes, padded(tMin, tMax))
		r.sAxes = append(r.sAxes, padded(sMin, sMax))
		r.dAxes = append(r.dAxes, axis{p.MinDepth(), p.MaxDepth()})
	}
	return r
}

// padded widens a data range by 5% on each side so curves keep clear of the
// panel border.
func padded(min, max float64) axis {
	pad := (max - min) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return axis{min - pad, max + pad}
}

// Frame renders the animation frame at idx. The scatter panels accumulate
// the samples of frames[0..idx].
func (r *Renderer) Frame(frames []framegen.Frame, idx int) *image.RGBA {
	th := r.opts.Theme
	c := newCanvas(r.opts.Width, r.opts.Height, toRGBA(th.Background))

	title := fmt.Sprintf("Repeated sampling of T and S profiles (frame %03d/%03d)", idx+1, len(frames))
	c.textCentered(r.opts.Width/2, 20, title, toRGBA(th.Text))

	top, bottom := r.grid()
	for i := range r.profiles {
		r.drawDepthPanel(c, top[i], i, frames[idx].Samples[i])
		r.drawScatterPanel(c, bottom[i], i, frames, idx, true)
	}
	return c.image()
}

// Comparison renders the static figure: the full accumulated T-S scatter of
// both profiles side by side, labeled the same way as the animation.
func (r *Renderer) Comparison(frames []framegen.Frame) *image.RGBA {
	th := r.opts.Theme
	c := newCanvas(r.opts.Width, r.opts.Height, toRGBA(th.Background))

	c.textCentered(r.opts.Width/2, 20, "T-S pairs from sampled profiles", toRGBA(th.Text))

	cells := r.row()
	for i := range r.profiles {
		c.textCentered((cells[i].Min.X+cells[i].Max.X)/2, cells[i].Min.Y+12, r.profiles[i].Label, toRGBA(th.Text))
		r.drawScatterPanel(c, cells[i], i, frames, len(frames)-1, false)
	}
	return c.image()
}

const (
	outerMargin = 10
	titleBand   = 30
	cellTitleH  = 16
	leftBand    = 56
	rightInset  = 10
	topInset    = 34
	bottomBand  = 36
	colGap      = 24
	rowGap      = 12
)

// grid computes the 2x2 cell rectangles: top row depth panels, bottom row
// scatter panels, one column per profile.
func (r *Renderer) grid() (top, bottom []image.Rectangle) {
	contentTop := outerMargin + titleBand
	colW := (r.opts.Width - 2*outerMargin - colGap) / 2
	rowsH := r.opts.Height - contentTop - outerMargin
	topH := rowsH * 55 / 100
	bottomH := rowsH - topH - rowGap

	for i := 0; i < 2; i++ {
		x0 := outerMargin + i*(colW+colGap)
		top = append(top, image.Rect(x0, contentTop, x0+colW, contentTop+topH))
		y0 := contentTop + topH + rowGap
		bottom = append(bottom, image.Rect(x0, y0, x0+colW, y0+bottomH))
	}
	return top, bottom
}

// row computes one full-height cell per profile for the comparison figure.
func (r *Renderer) row() []image.Rectangle {
	contentTop := outerMargin + titleBand
	colW := (r.opts.Width - 2*outerMargin - colGap) / 2
	h := r.opts.Height - contentTop - outerMargin

	var cells []image.Rectangle
	for i := 0; i < 2; i++ {
		x0 := outerMargin + i*(colW+colGap)
		cells = append(cells, image.Rect(x0, contentTop, x0+colW, contentTop+h))
	}
	return cells
}

func inset(cell image.Rectangle) image.Rectangle {
	return image.Rect(cell.Min.X+leftBand, cell.Min.Y+topInset, cell.Max.X-rightInset, cell.Max.Y-bottomBand)
}

func (r *Renderer) drawDepthPanel(c *canvas, cell image.Rectangle, i int, cur framegen.Sample) {
	th := r.opts.Theme
	rect := inset(cell)

	c.textCentered((cell.Min.X+cell.Max.X)/2, cell.Min.Y+12, r.profiles[i].Label, toRGBA(th.Text))
	c.rect(rect, toRGBA(th.Grid))

	tPanel := panel{rect: rect, x: r.tAxes[i], y: r.dAxes[i], flipY: true}
	sPanel := panel{rect: rect, x: r.sAxes[i], y: r.dAxes[i], flipY: true}

	// profile lines
	line := r.lines[i]
	txs := make([]float64, len(line))
	sxs := make([]float64, len(line))
	ys := make([]float64, len(line))
	for k, pt := range line {
		txs[k] = tPanel.px(pt.Temp)
		sxs[k] = sPanel.px(pt.Salt)
		ys[k] = tPanel.py(pt.Depth)
	}
	c.polyline(sxs, ys, toRGBA(th.Salinity))
	c.polyline(txs, ys, toRGBA(th.Temperature))

	// detected staircase interfaces as ticks on the right border
	if len(r.opts.Steps) > i {
		for _, d := range r.opts.Steps[i] {
			y := int(tPanel.py(d))
			c.hline(rect.Max.X-6, rect.Max.X, y, toRGBA(th.Faded(th.Text, 0.4)))
		}
	}

	// sampling marker: scan line plus a dot on each curve
	my := tPanel.py(cur.Depth)
	c.hline(rect.Min.X, rect.Max.X, int(my), toRGBA(th.Marker))
	c.dot(tPanel.px(cur.Temp), my, 3, toRGBA(th.Temperature))
	c.dot(sPanel.px(cur.Salt), my, 3, toRGBA(th.Salinity))

	// axes: temperature ticks below, salinity ticks above, depth at the left
	c.text(rect.Min.X, rect.Max.Y+14, fmt.Sprintf("%.2f", r.tAxes[i].min), toRGBA(th.Temperature))
	c.textRight(rect.Max.X, rect.Max.Y+14, fmt.Sprintf("%.2f", r.tAxes[i].max), toRGBA(th.Temperature))
	c.textCentered((rect.Min.X+rect.Max.X)/2, rect.Max.Y+28, "Temperature (C)", toRGBA(th.Temperature))

	c.text(rect.Min.X, rect.Min.Y-4, fmt.Sprintf("%.2f", r.sAxes[i].min), toRGBA(th.Salinity))
	c.textRight(rect.Max.X, rect.Min.Y-4, fmt.Sprintf("%.2f", r.sAxes[i].max), toRGBA(th.Salinity))

	c.textRight(rect.Min.X-4, rect.Min.Y+10, fmt.Sprintf("%.0f", r.dAxes[i].min), toRGBA(th.Text))
	c.textRight(rect.Min.X-4, rect.Max.Y, fmt.Sprintf("%.0f", r.dAxes[i].max), toRGBA(th.Text))
	c.text(rect.Min.X+4, rect.Min.Y+12, "Pressure (dbar)", toRGBA(th.Faded(th.Text, 0.4)))
}

// drawScatterPanel draws the cumulative T-S scatter of frames[0..idx] for one
// profile. shadeAge fades older samples toward the background; the static
// comparison figure keeps every sample at full brightness.
func (r *Renderer) drawScatterPanel(c *canvas, cell image.Rectangle, i int, frames []framegen.Frame, idx int, shadeAge bool) {
	th := r.opts.Theme
	rect := inset(cell)
	c.rect(rect, toRGBA(th.Grid))

	p := panel{rect: rect, x: r.sAxes[i], y: r.tAxes[i]}

	total := len(frames)
	for k := 0; k <= idx && k < total; k++ {
		s := frames[k].Samples[i]
		col := th.Sample
		if shadeAge {
			col = th.Faded(th.Sample, float64(idx-k)/float64(total))
		}
		c.dot(p.px(s.Salt), p.py(s.Temp), 2, toRGBA(col))
	}
	if shadeAge && idx < total {
		s := frames[idx].Samples[i]
		c.dot(p.px(s.Salt), p.py(s.Temp), 3, toRGBA(th.Marker))
	}

	c.text(rect.Min.X, rect.Max.Y+14, fmt.Sprintf("%.2f", r.sAxes[i].min), toRGBA(th.Text))
	c.textRight(rect.Max.X, rect.Max.Y+14, fmt.Sprintf("%.2f", r.sAxes[i].max), toRGBA(th.Text))
	c.textCentered((rect.Min.X+rect.Max.X)/2, rect.Max.Y+28, "Salinity (g/kg)", toRGBA(th.Text))

	c.textRight(rect.Min.X-4, rect.Max.Y, fmt.Sprintf("%.2f", r.tAxes[i].min), toRGBA(th.Text))
	c.textRight(rect.Min.X-4, rect.Min.Y+10, fmt.Sprintf("%.2f", r.tAxes[i].max), toRGBA(th.Text))
	c.text(rect.Min.X+4, rect.Min.Y+12, "Temperature (C)", toRGBA(th.Faded(th.Text, 0.4)))
}
