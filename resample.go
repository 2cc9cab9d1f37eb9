package interp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Interpolator blends the four corner values of a grid cell. v00 is at the
// cell's minimum x and y corner, v10 one step along x, v01 one step along y;
// x and y are fractions of the cell size in [0, 1].
type Interpolator interface {
	Interpolate(v00, v10, v01, v11, x, y float64) float64
}

type BilinearInterpolator struct{}

func Lerp(value1, value2, amount float64) float64 { return value1 + (value2-value1)*amount }

func (BilinearInterpolator) Interpolate(v00, v10, v01, v11, x, y float64) float64 {
	return Lerp(Lerp(v00, v10, x), Lerp(v01, v11, x), y)
}

type HyperbolicInterpolator struct{}

func (HyperbolicInterpolator) Interpolate(v00, v10, v01, v11, x, y float64) float64 {
	a00 := v00
	a10 := v10 - v00
	a01 := v01 - v00
	a11 := v00 - v10 - v01 + v11
	return a00 + a10*x + a01*y + a11*x*y
}

// Resample evaluates s, defined on from, at every node of to. NaN corners
// are replaced by the mean of the finite corners of their cell; target
// nodes outside the source extent are NaN. The variance, if any, is
// resampled the same way.
func Resample(s *Surface, from, to *Grid, in Interpolator) (*Surface, error) {
	if s == nil {
		return nil, checkAligned(nil, from)
	}
	if err := checkAligned(s.Values, from); err != nil {
		return nil, err
	}
	if err := to.validate(); err != nil {
		return nil, err
	}
	if in == nil {
		in = BilinearInterpolator{}
	}

	xs := mat.Row(nil, 0, from.X)
	ys := mat.Col(nil, 0, from.Y)
	out := &Surface{Values: resample(s.Values, xs, ys, to, in)}
	if s.Variance != nil {
		out.Variance = resample(s.Variance, xs, ys, to, in)
	}
	return out, nil
}

func resample(z *mat.Dense, xs, ys []float64, to *Grid, in Interpolator) *mat.Dense {
	rows, cols := to.Dims()
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := to.At(r, c)
			i0, i1, fx, okx := locate(xs, p[0])
			j0, j1, fy, oky := locate(ys, p[1])
			if !okx || !oky {
				out.Set(r, c, math.NaN())
				continue
			}
			v := [4]float64{z.At(j0, i0), z.At(j0, i1), z.At(j1, i0), z.At(j1, i1)}
			avg := averageFinite(v[:]...)
			for k := range v {
				if math.IsNaN(v[k]) {
					v[k] = avg
				}
			}
			out.Set(r, c, in.Interpolate(v[0], v[1], v[2], v[3], fx, fy))
		}
	}
	return out
}

// locate finds the cell of axis containing v and the fraction of v along
// it. The axis may be ascending or descending.
func locate(axis []float64, v float64) (lo, hi int, frac float64, ok bool) {
	n := len(axis)
	if n == 1 {
		return 0, 0, 0, v == axis[0]
	}
	desc := axis[0] > axis[n-1]
	at := func(i int) float64 {
		if desc {
			return axis[n-1-i]
		}
		return axis[i]
	}
	if v < at(0) || v > at(n-1) {
		return 0, 0, 0, false
	}
	i := sort.Search(n, func(i int) bool { return at(i) >= v })
	if i == 0 {
		i = 1
	}
	lo, hi = i-1, i
	if span := at(hi) - at(lo); span != 0 {
		frac = (v - at(lo)) / span
	}
	if desc {
		lo, hi = n-1-lo, n-1-hi
	}
	return lo, hi, frac, true
}

func averageFinite(values ...float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
