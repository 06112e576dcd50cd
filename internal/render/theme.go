package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the drawing colors for one run. The defaults mirror the
// dark-mode styling of the reference figures: lightcoral temperature,
// silver salinity, white samples on black.
type Theme struct {
	Background  colorful.Color
	Grid        colorful.Color
	Text        colorful.Color
	Temperature colorful.Color
	Salinity    colorful.Color
	Sample      colorful.Color
	Marker      colorful.Color
}

// DarkTheme returns the dark-mode palette.
func DarkTheme() Theme {
	return Theme{
		Background:  colorful.Color{R: 0, G: 0, B: 0},
		Grid:        colorful.Color{R: 0.25, G: 0.25, B: 0.25},
		Text:        colorful.Color{R: 1, G: 1, B: 1},
		Temperature: mustHex("#f08080"), // lightcoral
		Salinity:    mustHex("#c0c0c0"), // silver
		Sample:      colorful.Color{R: 1, G: 1, B: 1},
		Marker:      colorful.Color{R: 1, G: 1, B: 1},
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Faded blends a color toward the background. age 0 is the full color,
// age 1 the most washed out a sample dot is allowed to get.
func (t Theme) Faded(c colorful.Color, age float64) colorful.Color {
	if age < 0 {
		age = 0
	} else if age > 1 {
		age = 1
	}
	return c.BlendHcl(t.Background, age*0.6).Clamped()
}

// Palette returns the GIF palette: the base colors plus fade ramps so
// age-shaded sample dots quantize without banding artifacts.
func (t Theme) Palette() color.Palette {
	p := color.Palette{
		toRGBA(t.Background),
		toRGBA(t.Grid),
		toRGBA(t.Text),
		toRGBA(t.Marker),
	}
	for _, base := range []colorful.Color{t.Temperature, t.Salinity, t.Sample} {
		for i := 0; i <= 8; i++ {
			p = append(p, toRGBA(t.Faded(base, float64(i)/8)))
		}
	}
	return p
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
