package interp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type ModelType string

const (
	Gaussian    ModelType = "gaussian"
	Exponential ModelType = "exponential"
	Spherical   ModelType = "spherical"
)

// SurfaceProducer estimates a surface on every node of a grid from scattered
// samples. Implementations keep no state between calls.
type SurfaceProducer interface {
	Interpolate(samples Samples, grid *Grid) (*Surface, error)
}

// Surface is a scalar field aligned with the grid it was produced on.
// Variance is only set by producers that estimate it. Note records
// adjustments made to the request, such as a clamped neighbor count.
type Surface struct {
	Values   *mat.Dense
	Variance *mat.Dense
	Note     string
}

func (s *Surface) Dims() (int, int) {
	return s.Values.Dims()
}

func (s *Surface) At(row, column int) float64 {
	return s.Values.At(row, column)
}

// FlowField holds the components of the flow vectors on every grid node.
type FlowField struct {
	X *mat.Dense
	Y *mat.Dense
}

func (f *FlowField) Dims() (int, int) {
	return f.X.Dims()
}

type distanceList [][2]float64

func (t distanceList) Len() int {
	return len(t)
}

func (t distanceList) Less(i, j int) bool {
	return t[i][0] < t[j][0]
}

func (t distanceList) Swap(i, j int) {
	t[i], t[j] = t[j], t[i]
}

func checkAligned(z *mat.Dense, g *Grid) error {
	if g == nil || g.X == nil || g.Y == nil || z == nil {
		return fmt.Errorf("%w: missing surface or grid", ErrDimensionMismatch)
	}
	zr, zc := z.Dims()
	xr, xc := g.X.Dims()
	yr, yc := g.Y.Dims()
	if zr != xr || zc != xc || xr != yr || xc != yc {
		return fmt.Errorf("%w: grid_x(%d, %d), grid_y(%d, %d), z(%d, %d)",
			ErrDimensionMismatch, xr, xc, yr, yc, zr, zc)
	}
	return nil
}
