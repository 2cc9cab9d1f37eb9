package interp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// invert tries a Cholesky inverse of the symmetric matrix a and falls back
// to a general LU inverse. Near singular results are accepted; exactly
// singular ones are not.
func invert(a *mat.Dense) (*mat.Dense, error) {
	n, _ := a.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}

	var chol mat.Cholesky
	if chol.Factorize(sym) {
		var inv mat.SymDense
		if err := chol.InverseTo(&inv); err == nil {
			return mat.DenseCopyOf(&inv), nil
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("%w: singular %dx%d system", ErrDegenerateGeometry, n, n)
		}
	}
	return &inv, nil
}

func addDiag(a *mat.Dense, v float64) {
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		a.Set(i, i, a.At(i, i)+v)
	}
}
