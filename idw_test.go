package interp

import (
	"math"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var corners = Samples{
	Points: [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	Values: []float64{10, 20, 30, 40},
}

func unitGrid(t *testing.T, n int) *Grid {
	g, err := NewRegularGrid(vec2d.Rect{Min: vec2d.T{0, 0}, Max: vec2d.T{1, 1}}, n, n)
	require.NoError(t, err)
	return g
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestIDWCenterOfCorners(t *testing.T) {
	a := assert.New(t)

	g := unitGrid(t, 11)
	s, err := NewIDW(DefaultIDWConfig()).Interpolate(corners, g)
	require.NoError(t, err)

	a.Equal(vec2d.T{0.5, 0.5}, g.At(5, 5))
	a.InDelta(25.0, s.At(5, 5), 1e-9)
}

func TestIDWShape(t *testing.T) {
	a := assert.New(t)

	g, err := NewMeshGrid([]float64{0, 0.25, 0.5, 0.75, 1}, []float64{0, 0.5, 1})
	require.NoError(t, err)

	s, err := NewIDW(DefaultIDWConfig()).Interpolate(corners, g)
	require.NoError(t, err)

	rows, cols := s.Dims()
	gr, gc := g.X.Dims()
	a.Equal(gr, rows)
	a.Equal(gc, cols)
	a.Nil(s.Variance)
}

func TestIDWWeightsNormalized(t *testing.T) {
	a := assert.New(t)

	for _, dist := range [][]float64{
		{0.5, 1, 2, 4},
		{0, 1, 1},
		{1e-300, 1e300},
		{3, math.Inf(1), 7},
	} {
		for _, p := range []float64{0.5, 1, 2, 8, 50} {
			w := weights(dist, p)
			require.NotNil(t, w)
			a.InDelta(1.0, floats.Sum(w), 1e-12)
			for _, v := range w {
				a.False(math.IsNaN(v))
			}
		}
	}
	a.Nil(weights([]float64{math.Inf(1), math.Inf(1)}, 2))
}

func TestIDWExactCoincidence(t *testing.T) {
	a := assert.New(t)

	g := unitGrid(t, 10)
	s, err := NewIDW(DefaultIDWConfig()).Interpolate(corners, g)
	require.NoError(t, err)

	a.InDelta(10.0, s.At(0, 0), 1e-6)
	a.InDelta(20.0, s.At(0, 9), 1e-6)
	a.InDelta(30.0, s.At(9, 0), 1e-6)
	a.InDelta(40.0, s.At(9, 9), 1e-6)
}

func TestIDWPowerChangesSurface(t *testing.T) {
	a := assert.New(t)

	g := unitGrid(t, 10)
	c1 := DefaultIDWConfig()
	c1.Power = 1
	c4 := DefaultIDWConfig()
	c4.Power = 4

	s1, err := NewIDW(c1).Interpolate(corners, g)
	require.NoError(t, err)
	s4, err := NewIDW(c4).Interpolate(corners, g)
	require.NoError(t, err)

	a.False(mat.EqualApprox(s1.Values, s4.Values, 1e-9))
}

func TestIDWNeighborCount(t *testing.T) {
	a := assert.New(t)

	g, err := NewMeshGrid([]float64{0.1, 0.9}, []float64{0.1})
	require.NoError(t, err)

	cfg := DefaultIDWConfig()
	cfg.Neighbors = intp(1)
	s, err := NewIDW(cfg).Interpolate(corners, g)
	require.NoError(t, err)
	a.Equal(10.0, s.At(0, 0))
	a.Equal(20.0, s.At(0, 1))

	cfg.Neighbors = intp(100)
	all, err := NewIDW(cfg).Interpolate(corners, g)
	require.NoError(t, err)
	ref, err := NewIDW(DefaultIDWConfig()).Interpolate(corners, g)
	require.NoError(t, err)
	a.True(mat.Equal(ref.Values, all.Values))
	a.Contains(all.Note, "clamped to 4")
	a.Empty(ref.Note)
}

func TestIDWNoValidNeighbors(t *testing.T) {
	g, err := NewMeshGrid([]float64{5, 6}, []float64{5, 6})
	require.NoError(t, err)

	cfg := DefaultIDWConfig()
	cfg.MaxDistance = floatp(1)
	_, err = NewIDW(cfg).Interpolate(corners, g)
	assert.ErrorIs(t, err, ErrNoValidNeighbors)

	cfg.Fallback = floatp(-1)
	_, err = NewIDW(cfg).Interpolate(corners, g)
	assert.ErrorIs(t, err, ErrNoValidNeighbors)
}

func TestIDWPartialCoverage(t *testing.T) {
	a := assert.New(t)

	samples := Samples{Points: [][]float64{{0, 0}, {10, 0}}, Values: []float64{1, 3}}
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	g, err := NewMeshGrid(xs, []float64{0})
	require.NoError(t, err)

	cfg := DefaultIDWConfig()
	cfg.MaxDistance = floatp(2)

	s, err := NewIDW(cfg).Interpolate(samples, g)
	require.NoError(t, err)
	for c, x := range xs {
		v := s.At(0, c)
		switch {
		case x <= 2:
			a.Equal(1.0, v)
		case x >= 8:
			a.Equal(3.0, v)
		default:
			a.True(math.IsNaN(v), "node %v", x)
		}
	}

	cfg.Fallback = floatp(-1)
	s, err = NewIDW(cfg).Interpolate(samples, g)
	require.NoError(t, err)
	for c, x := range xs {
		if x > 2 && x < 8 {
			a.Equal(-1.0, s.At(0, c))
		} else {
			a.False(math.IsNaN(s.At(0, c)))
		}
	}
}

func TestIDWReproducible(t *testing.T) {
	a := assert.New(t)
	g := unitGrid(t, 17)

	for _, n := range []*int{nil, intp(3)} {
		cfg := DefaultIDWConfig()
		cfg.Neighbors = n

		first, err := NewIDW(cfg).Interpolate(corners, g)
		require.NoError(t, err)
		for i := 0; i < 50; i++ {
			s, err := NewIDW(cfg).Interpolate(corners, g)
			require.NoError(t, err)
			a.True(mat.Equal(first.Values, s.Values), "run %d", i)
		}
	}
}

func TestIDWTieAtNeighborCount(t *testing.T) {
	g := unitGrid(t, 17)
	cfg := DefaultIDWConfig()
	cfg.Neighbors = intp(3)

	// every corner is equidistant from the center, the first three listed win
	s, err := NewIDW(cfg).Interpolate(corners, g)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, s.At(8, 8), 1e-12)
}

func TestIDWErrors(t *testing.T) {
	a := assert.New(t)
	g := unitGrid(t, 3)
	p := NewIDW(DefaultIDWConfig())

	_, err := p.Interpolate(Samples{Points: [][]float64{{0, 0}}, Values: []float64{1, 2}}, g)
	a.ErrorIs(err, ErrDimensionMismatch)

	_, err = p.Interpolate(Samples{Points: [][]float64{{0, 0, 1}}, Values: []float64{1}}, g)
	a.ErrorIs(err, ErrShape)

	bad := &Grid{X: mat.NewDense(2, 3, nil), Y: mat.NewDense(3, 2, nil)}
	_, err = p.Interpolate(corners, bad)
	a.ErrorIs(err, ErrGridShape)

	_, err = NewIDW(IDWConfig{Power: 0}).Interpolate(corners, g)
	a.ErrorIs(err, ErrInvalidConfig)

	cfg := DefaultIDWConfig()
	cfg.Neighbors = intp(0)
	_, err = NewIDW(cfg).Interpolate(corners, g)
	a.ErrorIs(err, ErrInvalidConfig)

	_, err = p.Interpolate(Samples{}, g)
	a.ErrorIs(err, ErrInvalidInput)
}

func TestIDWIsSurfaceProducer(t *testing.T) {
	var _ SurfaceProducer = IDW{}
	var _ SurfaceProducer = Kriging{}
}
