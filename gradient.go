package interp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Gradient differentiates z along both grid axes. gx is the variation
// along columns (X), gy along rows (Y). Spacing is the mean step of the
// first grid row and column, so non-uniform axes are averaged.
func Gradient(z *mat.Dense, g *Grid) (gx, gy *mat.Dense, err error) {
	if err := checkDifferentiable(z, g); err != nil {
		return nil, nil, err
	}
	rows, cols := z.Dims()

	dx := meanStep(mat.Row(nil, 0, g.X))
	dy := meanStep(mat.Col(nil, 0, g.Y))

	gx = mat.NewDense(rows, cols, nil)
	gy = mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			gx.Set(r, c, difference(z, r, c, 0, 1, cols, dx))
			gy.Set(r, c, difference(z, r, c, 1, 0, rows, dy))
		}
	}
	return gx, gy, nil
}

func checkDifferentiable(z *mat.Dense, g *Grid) error {
	if err := checkAligned(z, g); err != nil {
		return err
	}
	if rows, cols := z.Dims(); rows < 2 || cols < 2 {
		return fmt.Errorf("%w: gradient needs at least 2x2 nodes, got %dx%d", ErrShape, rows, cols)
	}
	return nil
}

func meanStep(axis []float64) float64 {
	diff := make([]float64, len(axis)-1)
	for i := range diff {
		diff[i] = axis[i+1] - axis[i]
	}
	return stat.Mean(diff, nil)
}

// difference is a central difference inside the axis and a one-sided
// first order difference at both ends. (dr, dc) selects the axis and
// n is its length.
func difference(z *mat.Dense, r, c, dr, dc, n int, h float64) float64 {
	i := r*dr + c*dc
	switch i {
	case 0:
		return (z.At(r+dr, c+dc) - z.At(r, c)) / h
	case n - 1:
		return (z.At(r, c) - z.At(r-dr, c-dc)) / h
	default:
		return (z.At(r+dr, c+dc) - z.At(r-dr, c-dc)) / (2 * h)
	}
}
