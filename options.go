package interp

import (
	"fmt"
	"math"
)

const DefaultPower = 2.0

// IDWConfig parameterizes inverse distance weighting. Nil fields are unset.
type IDWConfig struct {
	// Power is the distance exponent, larger values sharpen locality.
	Power float64 `yaml:"power" json:"power"`
	// Neighbors caps how many nearest samples influence each node. Unset
	// means every sample.
	Neighbors *int `yaml:"neighbors,omitempty" json:"neighbors,omitempty"`
	// MaxDistance excludes samples farther than this from a node.
	MaxDistance *float64 `yaml:"maxDistance,omitempty" json:"maxDistance,omitempty"`
	// Fallback is assigned to nodes with no sample within MaxDistance.
	// Unset means NaN.
	Fallback *float64 `yaml:"fallback,omitempty" json:"fallback,omitempty"`
}

func DefaultIDWConfig() IDWConfig {
	return IDWConfig{Power: DefaultPower}
}

func (c IDWConfig) Validate() error {
	if math.IsNaN(c.Power) || math.IsInf(c.Power, 0) || c.Power <= 0 {
		return fmt.Errorf("%w: power %v must be positive", ErrInvalidConfig, c.Power)
	}
	if c.Neighbors != nil && *c.Neighbors < 1 {
		return fmt.Errorf("%w: neighbor count %d must be positive", ErrInvalidConfig, *c.Neighbors)
	}
	if c.MaxDistance != nil && !(*c.MaxDistance > 0) {
		return fmt.Errorf("%w: max distance %v must be positive", ErrInvalidConfig, *c.MaxDistance)
	}
	return nil
}

func (c IDWConfig) fallback() float64 {
	if c.Fallback != nil {
		return *c.Fallback
	}
	return math.NaN()
}

// KrigingConfig parameterizes the ordinary kriging producer.
type KrigingConfig struct {
	Model ModelType `yaml:"model" json:"model"`
	// Lags is the maximum number of lag bins of the empirical variogram.
	Lags int `yaml:"lags" json:"lags"`
	// Sigma2 is added to the diagonal of the covariance matrix.
	Sigma2 float64 `yaml:"sigma2" json:"sigma2"`
	// Alpha is the inverse ridge of the variogram fit.
	Alpha float64 `yaml:"alpha" json:"alpha"`
	// AnisotropyAngle is the direction of the major axis of correlation, in
	// degrees counterclockwise from +X.
	AnisotropyAngle float64 `yaml:"anisotropyAngle" json:"anisotropyAngle"`
	// AnisotropyRatio is the major to minor range ratio, 1 is isotropic.
	AnisotropyRatio float64 `yaml:"anisotropyRatio" json:"anisotropyRatio"`
	// Variance requests the estimation variance alongside the surface.
	Variance bool `yaml:"variance" json:"variance"`
	// ClipToHull assigns Fallback to nodes outside the samples' convex hull.
	ClipToHull bool     `yaml:"clipToHull" json:"clipToHull"`
	Fallback   *float64 `yaml:"fallback,omitempty" json:"fallback,omitempty"`
}

func DefaultKrigingConfig() KrigingConfig {
	return KrigingConfig{
		Model:           Spherical,
		Lags:            30,
		Sigma2:          0,
		Alpha:           100,
		AnisotropyAngle: 0,
		AnisotropyRatio: 1,
	}
}

func (c KrigingConfig) Validate() error {
	switch c.Model {
	case Gaussian, Exponential, Spherical:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownModel, c.Model)
	}
	if c.Lags < 2 {
		return fmt.Errorf("%w: %d lags, want at least 2", ErrInvalidConfig, c.Lags)
	}
	if !(c.Alpha > 0) {
		return fmt.Errorf("%w: alpha %v must be positive", ErrInvalidConfig, c.Alpha)
	}
	if c.Sigma2 < 0 {
		return fmt.Errorf("%w: sigma2 %v must not be negative", ErrInvalidConfig, c.Sigma2)
	}
	if !(c.AnisotropyRatio >= 1) {
		return fmt.Errorf("%w: anisotropy ratio %v, want >= 1", ErrInvalidConfig, c.AnisotropyRatio)
	}
	return nil
}

func (c KrigingConfig) fallback() float64 {
	if c.Fallback != nil {
		return *c.Fallback
	}
	return math.NaN()
}
