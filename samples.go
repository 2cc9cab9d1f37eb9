package interp

import (
	"fmt"
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"
)

// Samples is a set of scattered observations: Points[i] is the (x, y)
// location of Values[i].
type Samples struct {
	Points [][]float64
	Values []float64
}

func NewSamples(pos []vec3d.T) Samples {
	s := Samples{Points: make([][]float64, len(pos)), Values: make([]float64, len(pos))}
	for i := range pos {
		s.Points[i] = []float64{pos[i][0], pos[i][1]}
		s.Values[i] = pos[i][2]
	}
	return s
}

func (s Samples) Len() int {
	return len(s.Points)
}

// Validate checks the value count and the arity of every coordinate.
func (s Samples) Validate() error {
	if len(s.Points) != len(s.Values) {
		return fmt.Errorf("%w: %d coordinates, %d values", ErrDimensionMismatch, len(s.Points), len(s.Values))
	}
	for i, p := range s.Points {
		if len(p) != 2 {
			return fmt.Errorf("%w: coordinate %d has %d components, want 2", ErrShape, i, len(p))
		}
	}
	return nil
}

// Coordinates returns the sample locations. Validate first.
func (s Samples) Coordinates() []vec2d.T {
	ret := make([]vec2d.T, len(s.Points))
	for i, p := range s.Points {
		ret[i] = vec2d.T{p[0], p[1]}
	}
	return ret
}

// Positions packs every sample as {x, y, value}.
func (s Samples) Positions() []vec3d.T {
	ret := make([]vec3d.T, len(s.Points))
	for i, p := range s.Points {
		ret[i] = vec3d.T{p[0], p[1], s.Values[i]}
	}
	return ret
}

func minMaxVec3(ra []vec3d.T) (vec3d.T, vec3d.T, error) {
	if len(ra) == 0 {
		return vec3d.T{}, vec3d.T{}, fmt.Errorf("%w: no point", ErrInvalidInput)
	}
	min, max := ra[0], ra[0]
	for i := 1; i < len(ra); i++ {
		for j := range ra[i] {
			min[j] = math.Min(min[j], ra[i][j])
			max[j] = math.Max(max[j], ra[i][j])
		}
	}
	return min, max, nil
}
