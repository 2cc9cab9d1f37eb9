package interp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FlowModel derives flow vectors from a potentiometric surface. The surface
// and grid are checked when the model is built, so a model that exists can
// always compute.
type FlowModel struct {
	z    *mat.Dense
	grid *Grid
}

func NewFlowModel(s *Surface, grid *Grid) (*FlowModel, error) {
	var z *mat.Dense
	if s != nil {
		z = s.Values
	}
	if err := checkDifferentiable(z, grid); err != nil {
		return nil, err
	}
	return &FlowModel{z: z, grid: grid}, nil
}

func (m *FlowModel) Gradient() (gx, gy *mat.Dense) {
	gx, gy, _ = Gradient(m.z, m.grid)
	return gx, gy
}

// Flow returns the negated gradient: vectors point from high to low values
// with a magnitude equal to the local slope.
func (m *FlowModel) Flow() *FlowField {
	gx, gy := m.Gradient()
	gx.Scale(-1, gx)
	gy.Scale(-1, gy)
	return &FlowField{X: gx, Y: gy}
}

func (f *FlowField) Magnitude(row, column int) float64 {
	return math.Hypot(f.X.At(row, column), f.Y.At(row, column))
}

// Azimuth is the flow direction in degrees clockwise from +Y, in [0, 360).
func (f *FlowField) Azimuth(row, column int) float64 {
	deg := RadToDeg(math.Atan2(f.X.At(row, column), f.Y.At(row, column)))
	if deg < 0 {
		deg += 360
	}
	return deg
}
