package framegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanviz/staircase/internal/profile"
)

func testProfiles(t *testing.T) []*profile.Profile {
	t.Helper()
	a, err := profile.New("A", []profile.Point{
		{Depth: 200, Temp: -1.5, Salt: 32.1},
		{Depth: 210, Temp: -1.2, Salt: 32.4},
		{Depth: 220, Temp: -0.9, Salt: 32.8},
	})
	require.NoError(t, err)
	b, err := profile.New("B", []profile.Point{
		{Depth: 150, Temp: -1.0, Salt: 31.0},
		{Depth: 175, Temp: -0.5, Salt: 31.5},
		{Depth: 300, Temp: 0.2, Salt: 33.0},
	})
	require.NoError(t, err)
	return []*profile.Profile{a, b}
}

func TestScheduleEndpointsAndMonotonicity(t *testing.T) {
	for name, s := range map[string]Schedule{"linear": LinearSchedule{}, "smooth": SmoothSchedule{}} {
		t.Run(name, func(t *testing.T) {
			const n = 96
			assert.Equal(t, 0.0, s.Progress(0, n))
			assert.Equal(t, 1.0, s.Progress(n-1, n))
			prev := -1.0
			for i := 0; i < n; i++ {
				p := s.Progress(i, n)
				assert.GreaterOrEqual(t, p, prev, "frame %d", i)
				prev = p
			}
		})
	}
}

func TestScheduleFor(t *testing.T) {
	s, err := ScheduleFor("linear")
	require.NoError(t, err)
	assert.IsType(t, LinearSchedule{}, s)

	s, err = ScheduleFor("smooth")
	require.NoError(t, err)
	assert.IsType(t, SmoothSchedule{}, s)

	_, err = ScheduleFor("bounce")
	require.Error(t, err)
}

func TestSequenceDepthsMonotonic(t *testing.T) {
	seq, err := NewSequence(testProfiles(t), SmoothSchedule{}, 40)
	require.NoError(t, err)

	prev := []float64{-1, -1}
	for f, ok := seq.Next(); ok; f, ok = seq.Next() {
		for i, s := range f.Samples {
			assert.GreaterOrEqual(t, s.Depth, prev[i])
			prev[i] = s.Depth
		}
	}
}

func TestSequenceEndpointsCoverDepthRange(t *testing.T) {
	profiles := testProfiles(t)
	seq, err := NewSequence(profiles, LinearSchedule{}, 10)
	require.NoError(t, err)

	first, ok := seq.Next()
	require.True(t, ok)
	var last Frame
	for f, ok := seq.Next(); ok; f, ok = seq.Next() {
		last = f
	}

	for i, p := range profiles {
		assert.Equal(t, p.MinDepth(), first.Samples[i].Depth)
		assert.Equal(t, p.MaxDepth(), last.Samples[i].Depth)
	}
}

func TestSequenceExhaustsAndRestarts(t *testing.T) {
	seq, err := NewSequence(testProfiles(t), SmoothSchedule{}, 12)
	require.NoError(t, err)

	var firstRun []Frame
	for f, ok := seq.Next(); ok; f, ok = seq.Next() {
		firstRun = append(firstRun, f)
	}
	require.Len(t, firstRun, 12)

	_, ok := seq.Next()
	assert.False(t, ok, "exhausted sequence should not yield more frames")

	seq.Reset()
	var secondRun []Frame
	for f, ok := seq.Next(); ok; f, ok = seq.Next() {
		secondRun = append(secondRun, f)
	}
	assert.Equal(t, firstRun, secondRun)
}

func TestSequenceDeterministic(t *testing.T) {
	profiles := testProfiles(t)

	collect := func() []Frame {
		seq, err := NewSequence(profiles, SmoothSchedule{}, 24)
		require.NoError(t, err)
		var out []Frame
		for f, ok := seq.Next(); ok; f, ok = seq.Next() {
			out = append(out, f)
		}
		return out
	}

	assert.Equal(t, collect(), collect())
}

func TestSequenceValidation(t *testing.T) {
	_, err := NewSequence(testProfiles(t), LinearSchedule{}, 1)
	require.Error(t, err)

	_, err = NewSequence(nil, LinearSchedule{}, 10)
	require.Error(t, err)
}

func TestAccumulatorCounts(t *testing.T) {
	profiles := testProfiles(t)
	const n = 25
	seq, err := NewSequence(profiles, LinearSchedule{}, n)
	require.NoError(t, err)

	acc := NewAccumulator(len(profiles))
	for f, ok := seq.Next(); ok; f, ok = seq.Next() {
		acc.Add(f)
	}

	for i := range profiles {
		assert.Equal(t, n, acc.Len(i))
	}
}

func TestSampleMatchesProfileAtMeasuredDepth(t *testing.T) {
	profiles := testProfiles(t)
	// 3 frames over a 3-point profile: the middle frame of a linear scan
	// lands exactly on profile A's middle measurement.
	seq, err := NewSequence(profiles, LinearSchedule{}, 3)
	require.NoError(t, err)

	mid := seq.At(1)
	assert.Equal(t, 210.0, mid.Samples[0].Depth)
	assert.Equal(t, -1.2, mid.Samples[0].Temp)
	assert.Equal(t, 32.4, mid.Samples[0].Salt)
}
