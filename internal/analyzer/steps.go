// Package analyzer detects thermohaline staircase structure in a profile:
// runs of near-uniform mixed layers separated by sharp gradient interfaces.
package analyzer

import (
	"math"

	"github.com/oceanviz/staircase/internal/profile"
)

// Step is one detected interface between two mixed layers.
type Step struct {
	Depth     float64 // mid-depth of the interface
	Thickness float64 // vertical extent of the high-gradient run
	DeltaT    float64 // temperature change across the interface
}

// Detector is the interface for staircase detection strategies.
type Detector interface {
	Detect(p *profile.Profile) ([]Step, error)
}

// GradientDetector finds interfaces by thresholding the vertical temperature
// gradient of a regularly resampled profile.
type GradientDetector struct {
	Resolution        float64 // resample step in meters
	GradientThreshold float64 // degC per meter marking an interface
	MinLayerThickness float64 // meters of low gradient required between interfaces
}

// NewGradientDetector creates a detector with thresholds that pick up the
// meter-scale Arctic staircases without firing on smooth profiles.
func NewGradientDetector() *GradientDetector {
	return &GradientDetector{
		Resolution:        0.25,
		GradientThreshold: 0.05,
		MinLayerThickness: 1.0,
	}
}

// Detect returns the interfaces found in the profile, ordered by depth.
func (d *GradientDetector) Detect(p *profile.Profile) ([]Step, error) {
	pts := p.Resample(d.Resolution)
	if len(pts) < 3 {
		return nil, nil
	}

	// Mark segments whose temperature gradient exceeds the threshold.
	sharp := make([]bool, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		dz := pts[i+1].Depth - pts[i].Depth
		if dz <= 0 {
			continue
		}
		grad := (pts[i+1].Temp - pts[i].Temp) / dz
		sharp[i] = math.Abs(grad) >= d.GradientThreshold
	}

	// Merge consecutive sharp segments into candidate interfaces.
	var steps []Step
	i := 0
	for i < len(sharp) {
		if !sharp[i] {
			i++
			continue
		}
		j := i
		for j < len(sharp) && sharp[j] {
			j++
		}
		top := pts[i].Depth
		bottom := pts[j].Depth
		steps = append(steps, Step{
			Depth:     (top + bottom) / 2,
			Thickness: bottom - top,
			DeltaT:    pts[j].Temp - pts[i].Temp,
		})
		i = j
	}

	// An interface only counts when a mixed layer separates it from its
	// neighbor; fused candidates belong to one continuous gradient.
	var out []Step
	for k, s := range steps {
		if k == 0 {
			out = append(out, s)
			continue
		}
		prev := &out[len(out)-1]
		gap := (s.Depth - s.Thickness/2) - (prev.Depth + prev.Thickness/2)
		if gap < d.MinLayerThickness {
			merged := Step{
				Depth:     (prev.Depth + s.Depth) / 2,
				Thickness: (s.Depth + s.Thickness/2) - (prev.Depth - prev.Thickness/2),
				DeltaT:    prev.DeltaT + s.DeltaT,
			}
			*prev = merged
			continue
		}
		out = append(out, s)
	}

	return out, nil
}

// Depths returns just the interface depths of a detection result.
func Depths(steps []Step) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = s.Depth
	}
	return out
}
