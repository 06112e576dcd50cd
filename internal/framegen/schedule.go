package framegen

import (
	"fmt"

	"github.com/fogleman/ease"
)

// Schedule maps a frame index onto scan progress in [0, 1]. Implementations
// must be monotonic non-decreasing with Progress(0)=0 and Progress(n-1)=1.
type Schedule interface {
	Progress(index, frames int) float64
}

// LinearSchedule scans at constant speed.
type LinearSchedule struct{}

func (LinearSchedule) Progress(index, frames int) float64 {
	return float64(index) / float64(frames-1)
}

// SmoothSchedule eases the scan in and out so the marker dwells near the top
// and bottom of the profiles. Easing preserves monotonicity and endpoints.
type SmoothSchedule struct{}

func (SmoothSchedule) Progress(index, frames int) float64 {
	return ease.InOutQuad(float64(index) / float64(frames-1))
}

// ScheduleFor resolves a schedule by its scenario name.
func ScheduleFor(name string) (Schedule, error) {
	switch name {
	case "linear":
		return LinearSchedule{}, nil
	case "smooth", "":
		return SmoothSchedule{}, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}
