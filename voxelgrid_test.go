package interp

import (
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThin(t *testing.T) {
	a := assert.New(t)

	s := Samples{
		Points: [][]float64{{0, 0}, {0.2, 0.4}, {5, 5}, {5.5, 5.5}, {9, 0}},
		Values: []float64{1, 3, 10, 20, 7},
	}
	out, err := Thin(s, vec2d.T{1, 1})
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	a.Equal(3, out.Len())
	a.InDeltaSlice([]float64{0.1, 0.2}, out.Points[0], 1e-12)
	a.InDelta(2.0, out.Values[0], 1e-12)
	a.InDeltaSlice([]float64{5.25, 5.25}, out.Points[1], 1e-12)
	a.InDelta(15.0, out.Values[1], 1e-12)
	a.Equal([]float64{9, 0}, out.Points[2])
	a.Equal(7.0, out.Values[2])
}

func TestThinCollapsedAxis(t *testing.T) {
	s := Samples{
		Points: [][]float64{{0, 0}, {0, 3}, {4, 100}},
		Values: []float64{1, 2, 3},
	}
	out, err := Thin(s, vec2d.T{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.InDelta(t, 1.5, out.Values[0], 1e-12)
}

func TestThinErrors(t *testing.T) {
	_, err := Thin(Samples{}, vec2d.T{1, 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Thin(Samples{Points: [][]float64{{0, 0}}}, vec2d.T{1, 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
