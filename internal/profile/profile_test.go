package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadColumnOrder(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "depth first",
			content: "p,temp,salt\n200,-1.5,32.1\n210,-1.2,32.4\n220,-0.9,32.8\n",
		},
		{
			name:    "pandas index column",
			content: ",temp,salt,p\n0,-1.5,32.1,200\n1,-1.2,32.4,210\n2,-0.9,32.8,220\n",
		},
		{
			name:    "long names",
			content: "depth,temperature,salinity\n200,-1.5,32.1\n210,-1.2,32.4\n220,-0.9,32.8\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Read(writeCSV(t, tt.content))
			require.NoError(t, err)
			require.Len(t, p.Points, 3)
			assert.Equal(t, 200.0, p.MinDepth())
			assert.Equal(t, 220.0, p.MaxDepth())
			assert.Equal(t, -1.5, p.Points[0].Temp)
			assert.Equal(t, 32.8, p.Points[2].Salt)
		})
	}
}

func TestReadDropsIncompleteRows(t *testing.T) {
	content := "p,temp,salt\n" +
		"200,-1.5,32.1\n" +
		"205,NaN,32.2\n" +
		"210,-1.2,\n" +
		"215,not-a-number,32.6\n" +
		"220,-0.9,32.8\n"
	p, err := Read(writeCSV(t, content))
	require.NoError(t, err)
	assert.Len(t, p.Points, 2)
}

func TestReadSortsUpcast(t *testing.T) {
	// ITP up-casts record deepest measurement first.
	content := "p,temp,salt\n220,-0.9,32.8\n210,-1.2,32.4\n200,-1.5,32.1\n"
	p, err := Read(writeCSV(t, content))
	require.NoError(t, err)
	assert.Equal(t, 200.0, p.Points[0].Depth)
	assert.Equal(t, 220.0, p.Points[2].Depth)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing column", content: "p,temp\n200,-1.5\n210,-1.2\n"},
		{name: "no usable rows", content: "p,temp,salt\nx,y,z\n"},
		{name: "single point", content: "p,temp,salt\n200,-1.5,32.1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(writeCSV(t, tt.content))
			var fileErr *FileError
			require.ErrorAs(t, err, &fileErr)
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func threePointProfile(t *testing.T) *Profile {
	t.Helper()
	p, err := New("test", []Point{
		{Depth: 200, Temp: -1.5, Salt: 32.1},
		{Depth: 210, Temp: -1.2, Salt: 32.4},
		{Depth: 220, Temp: -0.9, Salt: 32.8},
	})
	require.NoError(t, err)
	return p
}

func TestAtMeasuredPointsExact(t *testing.T) {
	p := threePointProfile(t)
	for _, pt := range p.Points {
		temp, salt := p.At(pt.Depth)
		assert.Equal(t, pt.Temp, temp, "temperature at %.0f", pt.Depth)
		assert.Equal(t, pt.Salt, salt, "salinity at %.0f", pt.Depth)
	}
}

func TestAtInterpolatesBetweenPoints(t *testing.T) {
	p := threePointProfile(t)
	temp, salt := p.At(205)
	assert.InDelta(t, -1.35, temp, 1e-12)
	assert.InDelta(t, 32.25, salt, 1e-12)
}

func TestAtClampsOutsideRange(t *testing.T) {
	p := threePointProfile(t)

	temp, salt := p.At(100)
	assert.Equal(t, -1.5, temp)
	assert.Equal(t, 32.1, salt)

	temp, salt = p.At(300)
	assert.Equal(t, -0.9, temp)
	assert.Equal(t, 32.8, salt)
}

func TestDepthAt(t *testing.T) {
	p := threePointProfile(t)
	assert.Equal(t, 200.0, p.DepthAt(0))
	assert.Equal(t, 220.0, p.DepthAt(1))
	assert.Equal(t, 210.0, p.DepthAt(0.5))
}

func TestWindow(t *testing.T) {
	p := threePointProfile(t)

	w, err := p.Window(205, 225)
	require.NoError(t, err)
	assert.Len(t, w.Points, 2)
	assert.Equal(t, 210.0, w.MinDepth())

	// a window keeping fewer than two points cannot be interpolated
	_, err = p.Window(205, 215)
	require.Error(t, err)
}

func TestResample(t *testing.T) {
	p := threePointProfile(t)
	pts := p.Resample(2.5)

	require.NotEmpty(t, pts)
	assert.Equal(t, p.MinDepth(), pts[0].Depth)
	assert.Equal(t, p.MaxDepth(), pts[len(pts)-1].Depth)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].Depth, pts[i-1].Depth)
	}
}

func TestDuplicateDepthsCollapse(t *testing.T) {
	p, err := New("dup", []Point{
		{Depth: 200, Temp: -1.5, Salt: 32.1},
		{Depth: 200, Temp: -9.9, Salt: 99.9},
		{Depth: 210, Temp: -1.2, Salt: 32.4},
	})
	require.NoError(t, err)
	require.Len(t, p.Points, 2)
	assert.Equal(t, -1.5, p.Points[0].Temp)
}
