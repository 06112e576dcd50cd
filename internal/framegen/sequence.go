// Package framegen turns a set of profiles and a sampling schedule into a
// finite sequence of animation frames.
package framegen

import (
	"fmt"

	"github.com/oceanviz/staircase/internal/profile"
)

// Sample is one simulated measurement: the depth the marker sits at for one
// profile and the temperature/salinity resolved there.
type Sample struct {
	Depth float64
	Temp  float64
	Salt  float64
}

// Frame is a single animation time-step. Samples is aligned with the profile
// slice the sequence was built from.
type Frame struct {
	Index    int
	Progress float64
	Samples  []Sample
}

// Sequence is a lazy, finite, restartable iterator over frames. Frames are
// computed on demand; the same sequence always yields the same frames.
type Sequence struct {
	profiles []*profile.Profile
	schedule Schedule
	frames   int
	next     int
}

// NewSequence builds a sequence of the given length over the profiles.
func NewSequence(profiles []*profile.Profile, schedule Schedule, frames int) (*Sequence, error) {
	if frames < 2 {
		return nil, fmt.Errorf("sequence needs at least 2 frames, got %d", frames)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("sequence needs at least one profile")
	}
	return &Sequence{profiles: profiles, schedule: schedule, frames: frames}, nil
}

// Len returns the total number of frames.
func (s *Sequence) Len() int { return s.frames }

// Next returns the next frame, or ok=false once the sequence is exhausted.
func (s *Sequence) Next() (Frame, bool) {
	if s.next >= s.frames {
		return Frame{}, false
	}
	f := s.At(s.next)
	s.next++
	return f, true
}

// Reset rewinds the sequence to its first frame.
func (s *Sequence) Reset() { s.next = 0 }

// At computes the frame at an index without advancing the iterator.
func (s *Sequence) At(index int) Frame {
	progress := s.schedule.Progress(index, s.frames)
	f := Frame{
		Index:    index,
		Progress: progress,
		Samples:  make([]Sample, len(s.profiles)),
	}
	for i, p := range s.profiles {
		depth := p.DepthAt(progress)
		temp, salt := p.At(depth)
		f.Samples[i] = Sample{Depth: depth, Temp: temp, Salt: salt}
	}
	return f
}

// Accumulator collects the (T, S) pairs sampled so far, one list per profile.
type Accumulator struct {
	samples [][]Sample
}

// NewAccumulator creates an accumulator for the given number of profiles.
func NewAccumulator(profiles int) *Accumulator {
	return &Accumulator{samples: make([][]Sample, profiles)}
}

// Add appends the frame's samples to each profile's list.
func (a *Accumulator) Add(f Frame) {
	for i, s := range f.Samples {
		a.samples[i] = append(a.samples[i], s)
	}
}

// Len returns the number of samples collected for one profile.
func (a *Accumulator) Len(profileIdx int) int {
	return len(a.samples[profileIdx])
}

// Samples returns the samples collected for one profile, in playback order.
func (a *Accumulator) Samples(profileIdx int) []Sample {
	return a.samples[profileIdx]
}
