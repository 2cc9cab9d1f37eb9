package interp

import (
	"fmt"
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/mat"
)

// Grid is a rectilinear mesh. Rows follow the Y axis and columns the X
// axis, so X.At(r, c) is the c-th X coordinate and Y.At(r, c) the r-th Y
// coordinate.
type Grid struct {
	X *mat.Dense
	Y *mat.Dense
}

// NewMeshGrid builds the Cartesian mesh of two coordinate sequences.
func NewMeshGrid(xs, ys []float64) (*Grid, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return nil, fmt.Errorf("%w: empty axis (%d x, %d y)", ErrGridShape, len(xs), len(ys))
	}
	rows, cols := len(ys), len(xs)
	gx := mat.NewDense(rows, cols, nil)
	gy := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		gx.SetRow(r, xs)
		for c := 0; c < cols; c++ {
			gy.Set(r, c, ys[r])
		}
	}
	return &Grid{X: gx, Y: gy}, nil
}

// NewRegularGrid spreads width nodes along X and height nodes along Y over
// bbox, both ends included.
func NewRegularGrid(bbox vec2d.Rect, width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d nodes", ErrGridShape, width, height)
	}
	return NewMeshGrid(
		linspace(bbox.Min[0], bbox.Max[0], width),
		linspace(bbox.Min[1], bbox.Max[1], height))
}

// GridFromSamples covers the rectangle of the samples' convex hull with
// nodes spaced resolution apart.
func GridFromSamples(s Samples, resolution float64) (*Grid, error) {
	if !(resolution > 0) {
		return nil, fmt.Errorf("%w: resolution %v", ErrInvalidConfig, resolution)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidInput)
	}
	return NewResolutionGrid(NewConvex(s.Coordinates()).Rect(), resolution)
}

// NewResolutionGrid steps resolution from bbox.Min along both axes. The
// last node is the last step not past bbox.Max, so the grid may stop short
// of it.
func NewResolutionGrid(bbox vec2d.Rect, resolution float64) (*Grid, error) {
	if !(resolution > 0) || math.IsInf(resolution, 1) {
		return nil, fmt.Errorf("%w: resolution %v", ErrInvalidConfig, resolution)
	}
	if !(bbox.Max[0] >= bbox.Min[0]) || !(bbox.Max[1] >= bbox.Min[1]) {
		return nil, fmt.Errorf("%w: bounds %v", ErrGridShape, bbox)
	}
	return NewMeshGrid(steps(bbox.Min[0], bbox.Max[0], resolution), steps(bbox.Min[1], bbox.Max[1], resolution))
}

// steps tolerates spans that are a whole number of steps up to rounding.
func steps(start, stop, step float64) []float64 {
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = start + step*float64(i)
	}
	return ret
}

func linspace(start, stop float64, n int) []float64 {
	ret := make([]float64, n)
	if n == 1 {
		ret[0] = start
		return ret
	}
	step := (stop - start) / float64(n-1)
	for i := range ret {
		ret[i] = start + step*float64(i)
	}
	ret[n-1] = stop
	return ret
}

func (g *Grid) validate() error {
	if g == nil || g.X == nil || g.Y == nil {
		return fmt.Errorf("%w: missing grid axis", ErrGridShape)
	}
	xr, xc := g.X.Dims()
	yr, yc := g.Y.Dims()
	if xr != yr || xc != yc {
		return fmt.Errorf("%w: grid_x(%d, %d), grid_y(%d, %d)", ErrGridShape, xr, xc, yr, yc)
	}
	return nil
}

func (g *Grid) Dims() (int, int) {
	return g.X.Dims()
}

func (g *Grid) At(row, column int) vec2d.T {
	return vec2d.T{g.X.At(row, column), g.Y.At(row, column)}
}

// Nodes flattens the grid in row-major order.
func (g *Grid) Nodes() []vec2d.T {
	rows, cols := g.Dims()
	ret := make([]vec2d.T, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			ret = append(ret, g.At(r, c))
		}
	}
	return ret
}

func (g *Grid) Bounds() vec2d.Rect {
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	for _, n := range g.Nodes() {
		r.Extend(&n)
	}
	return r
}
