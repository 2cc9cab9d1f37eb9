package interp

import (
	"fmt"
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Kriging is an ordinary kriging SurfaceProducer. A variogram is fitted to
// the samples of every call.
type Kriging struct {
	Config KrigingConfig
}

func NewKriging(config KrigingConfig) Kriging {
	return Kriging{Config: config}
}

func (p Kriging) Interpolate(samples Samples, grid *Grid) (*Surface, error) {
	cfg := p.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := samples.Validate(); err != nil {
		return nil, err
	}
	if err := grid.validate(); err != nil {
		return nil, err
	}
	if samples.Len() < 3 {
		return nil, fmt.Errorf("%w: %d samples, want at least 3", ErrNotEnoughPoints, samples.Len())
	}

	coords := samples.Coordinates()
	if collinear(coords) {
		return nil, fmt.Errorf("%w: samples are collinear", ErrDegenerateGeometry)
	}

	adjust := newAnisotropy(coords, cfg.AnisotropyAngle, cfg.AnisotropyRatio)
	predict, variance, err := fitVariogram(samples, coords, adjust, cfg)
	if err != nil {
		return nil, err
	}

	var hull *Convex
	if cfg.ClipToHull {
		hull = NewConvex(coords)
	}

	rows, cols := grid.Dims()
	out := &Surface{Values: mat.NewDense(rows, cols, nil)}
	if cfg.Variance {
		out.Variance = mat.NewDense(rows, cols, nil)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			node := grid.At(r, c)
			if hull != nil && !hull.Contains(node) {
				out.Values.Set(r, c, cfg.fallback())
				if out.Variance != nil {
					out.Variance.Set(r, c, math.NaN())
				}
				continue
			}
			a := adjust(node)
			out.Values.Set(r, c, predict(a[0], a[1]))
			if out.Variance != nil {
				out.Variance.Set(r, c, variance(a[0], a[1]))
			}
		}
	}
	return out, nil
}

type estimator func(x, y float64) float64

// fitVariogram returns the kriging predictor and variance of the samples.
// Samples of a single value have no spatial variance to fit and yield that
// value everywhere.
func fitVariogram(samples Samples, coords []vec2d.T, adjust func(vec2d.T) vec2d.T, cfg KrigingConfig) (estimator, estimator, error) {
	if lo, hi := floats.Min(samples.Values), floats.Max(samples.Values); lo == hi {
		return func(x, y float64) float64 { return lo },
			func(x, y float64) float64 { return 0 }, nil
	}

	pos := make([]vec3d.T, len(coords))
	for i := range coords {
		a := adjust(coords[i])
		pos[i] = vec3d.T{a[0], a[1], samples.Values[i]}
	}
	kri, err := TrainVariogram(pos, cfg.Model, cfg.Sigma2, cfg.Alpha, cfg.Lags)
	if err != nil {
		return nil, nil, err
	}
	return kri.Predict, kri.Variance, nil
}

// newAnisotropy maps coordinates into the isotropic frame: a rotation by
// -angle about the samples' centroid followed by a stretch of Y by ratio.
func newAnisotropy(coords []vec2d.T, angle, ratio float64) func(vec2d.T) vec2d.T {
	if angle == 0 && ratio == 1 {
		return func(v vec2d.T) vec2d.T { return v }
	}
	xs := make([]float64, len(coords))
	ys := make([]float64, len(coords))
	for i := range coords {
		xs[i], ys[i] = coords[i][0], coords[i][1]
	}
	center := vec2d.T{stat.Mean(xs, nil), stat.Mean(ys, nil)}
	rot := Rotator{-angle}
	return func(v vec2d.T) vec2d.T {
		a := rot.RotateAbout(v, center)
		a[1] = center[1] + (a[1]-center[1])*ratio
		return a
	}
}

func collinear(points []vec2d.T) bool {
	p0 := points[0]
	var dir vec2d.T
	found := false
	for _, p := range points[1:] {
		if p != p0 {
			dir = vec2d.Sub(&p, &p0)
			found = true
			break
		}
	}
	if !found {
		return true
	}
	for _, p := range points {
		d := vec2d.Sub(&p, &p0)
		if math.Abs(cross(dir, d)) > 1e-12*dir.Length()*d.Length() {
			return false
		}
	}
	return true
}
