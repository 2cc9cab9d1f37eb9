package interp

import (
	"fmt"
	"math"
	"sort"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"gonum.org/v1/gonum/mat"
)

type variogramModel func(h, nugget, range_, sill, A float64) float64

func krigingGaussian(h, nugget, range_, sill, A float64) float64 {
	x := -(1.0 / A) * ((h / range_) * (h / range_))
	return nugget + ((sill-nugget)/range_)*
		(1.0-exp(x))
}

func krigingExponential(h, nugget, range_, sill, A float64) float64 {
	x := -(1.0 / A) * (h / range_)
	return nugget + ((sill-nugget)/range_)*
		(1.0-exp(x))
}

func krigingSpherical(h, nugget, range_, sill, A float64) float64 {
	if h > range_ {
		return nugget + (sill-nugget)/range_
	}
	x := h / range_
	return nugget + ((sill-nugget)/range_)*
		(1.5*(x)-0.5*(pow3(x)))
}

// designTerm is the regressor of the semivariance fit at lag h.
func designTerm(model ModelType, h, range_, A float64) float64 {
	switch model {
	case Gaussian:
		return 1.0 - exp(-(1.0/A)*pow2(h/range_))
	case Exponential:
		return 1.0 - exp(-(1.0/A)*h/range_)
	default:
		return 1.5*(h/range_) - 0.5*pow3(h/range_)
	}
}

// Variogram is a fitted semivariogram together with the solved kriging
// system of the points it was trained on.
type Variogram struct {
	pos []vec3d.T

	Model  ModelType `json:"model"`
	Nugget float64   `json:"nugget"`
	Range  float64   `json:"range"`
	Sill   float64   `json:"sill"`
	A      float64   `json:"A"`
	N      int       `json:"n"`

	model variogramModel
	inv   *mat.Dense
	m     *mat.VecDense
}

// TrainVariogram fits model to the empirical semivariogram of pos, where
// pos[i][2] is the observed value, and solves the kriging system with
// sigma2 added to its diagonal. alpha is the inverse ridge of the fit and
// maxLags bounds the number of lag bins.
func TrainVariogram(pos []vec3d.T, model ModelType, sigma2, alpha float64, maxLags int) (*Variogram, error) {
	kri := &Variogram{pos: pos, Model: model, A: 1.0 / 3.0, N: len(pos)}
	switch model {
	case Gaussian:
		kri.model = krigingGaussian
	case Exponential:
		kri.model = krigingExponential
	case Spherical:
		kri.model = krigingSpherical
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}

	n := len(pos)
	if n < 3 {
		return nil, fmt.Errorf("%w: %d samples, want at least 3", ErrNotEnoughPoints, n)
	}

	distance := make(distanceList, 0, (n*n-n)/2)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			distance = append(distance, [2]float64{
				planar(pos[i], pos[j]),
				math.Abs(pos[i][2] - pos[j][2]),
			})
		}
	}
	sort.Sort(distance)
	maxDistance := distance[len(distance)-1][0]

	var lag, semi []float64
	if len(distance) < maxLags {
		for _, d := range distance {
			lag = append(lag, d[0])
			semi = append(semi, d[1])
		}
	} else {
		tolerance := maxDistance / float64(maxLags)
		j := 0
		for i := 0; i < maxLags && j < len(distance); i++ {
			var sumLag, sumSemi float64
			k := 0
			for j < len(distance) && distance[j][0] <= float64(i+1)*tolerance {
				sumLag += distance[j][0]
				sumSemi += distance[j][1]
				j++
				k++
			}
			if k > 0 {
				lag = append(lag, sumLag/float64(k))
				semi = append(semi, sumSemi/float64(k))
			}
		}
		if len(lag) < 2 {
			return nil, fmt.Errorf("%w: %d non-empty lags", ErrDegenerateGeometry, len(lag))
		}
	}

	kri.Range = lag[len(lag)-1] - lag[0]
	if !(kri.Range > 0) {
		kri.Range = maxDistance
	}

	l := len(lag)
	X := mat.NewDense(l, 2, nil)
	Y := mat.NewVecDense(l, semi)
	for i := 0; i < l; i++ {
		X.Set(i, 0, 1)
		X.Set(i, 1, designTerm(model, lag[i], kri.Range, kri.A))
	}

	var Z mat.Dense
	Z.Mul(X.T(), X)
	addDiag(&Z, 1/alpha)
	Zinv, err := invert(&Z)
	if err != nil {
		return nil, err
	}
	var XtY, W mat.VecDense
	XtY.MulVec(X.T(), Y)
	W.MulVec(Zinv, &XtY)

	kri.Nugget = W.AtVec(0)
	kri.Sill = W.AtVec(1)*kri.Range + kri.Nugget

	K := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			v := kri.gamma(planar(pos[i], pos[j]))
			K.Set(i, j, v)
			K.Set(j, i, v)
		}
		K.Set(i, i, kri.gamma(0))
	}
	addDiag(K, sigma2)

	if kri.inv, err = invert(K); err != nil {
		return nil, err
	}

	t := make([]float64, n)
	for i := range pos {
		t[i] = pos[i][2]
	}
	kri.m = mat.NewVecDense(n, nil)
	kri.m.MulVec(kri.inv, mat.NewVecDense(n, t))

	return kri, nil
}

func (kri *Variogram) gamma(h float64) float64 {
	return kri.model(h, kri.Nugget, kri.Range, kri.Sill, kri.A)
}

func (kri *Variogram) k(x, y float64) *mat.VecDense {
	k := mat.NewVecDense(kri.N, nil)
	for i := 0; i < kri.N; i++ {
		k.SetVec(i, kri.gamma(math.Hypot(x-kri.pos[i][0], y-kri.pos[i][1])))
	}
	return k
}

func (kri *Variogram) Predict(x, y float64) float64 {
	return mat.Dot(kri.k(x, y), kri.m)
}

// Variance is the estimation variance at (x, y).
func (kri *Variogram) Variance(x, y float64) float64 {
	k := kri.k(x, y)
	return kri.gamma(0) + mat.Inner(k, kri.inv, k)
}

func planar(a, b vec3d.T) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}
