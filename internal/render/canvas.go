package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// canvas wraps an RGBA image with the handful of drawing primitives the
// panels need. All drawing is deterministic.
type canvas struct {
	img  *image.RGBA
	face font.Face
}

func newCanvas(width, height int, bg color.Color) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &canvas{img: img, face: basicfont.Face7x13}
}

func (c *canvas) image() *image.RGBA { return c.img }

func (c *canvas) set(x, y int, col color.Color) {
	if image.Pt(x, y).In(c.img.Bounds()) {
		c.img.Set(x, y, col)
	}
}

func (c *canvas) hline(x0, x1, y int, col color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		c.set(x, y, col)
	}
}

func (c *canvas) vline(x, y0, y1 int, col color.Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		c.set(x, y, col)
	}
}

func (c *canvas) rect(r image.Rectangle, col color.Color) {
	c.hline(r.Min.X, r.Max.X, r.Min.Y, col)
	c.hline(r.Min.X, r.Max.X, r.Max.Y, col)
	c.vline(r.Min.X, r.Min.Y, r.Max.Y, col)
	c.vline(r.Max.X, r.Min.Y, r.Max.Y, col)
}

// line draws a 1px segment between two float coordinates by DDA stepping.
func (c *canvas) line(x0, y0, x1, y1 float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(int(math.Round(x0+dx*t)), int(math.Round(y0+dy*t)), col)
	}
}

func (c *canvas) polyline(xs, ys []float64, col color.Color) {
	for i := 0; i < len(xs)-1; i++ {
		c.line(xs[i], ys[i], xs[i+1], ys[i+1], col)
	}
}

// dot draws a filled circle.
func (c *canvas) dot(cx, cy float64, radius int, col color.Color) {
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				c.set(x0+dx, y0+dy, col)
			}
		}
	}
}

// text draws a string with its baseline at y.
func (c *canvas) text(x, y int, s string, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (c *canvas) textWidth(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

func (c *canvas) textCentered(cx, y int, s string, col color.Color) {
	c.text(cx-c.textWidth(s)/2, y, s, col)
}

func (c *canvas) textRight(x, y int, s string, col color.Color) {
	c.text(x-c.textWidth(s), y, s, col)
}
