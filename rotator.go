package interp

import (
	"math"

	mat2d "github.com/flywave/go3d/float64/mat2"
	vec2d "github.com/flywave/go3d/float64/vec2"
)

// Rotator is a counterclockwise rotation about the origin.
type Rotator struct {
	Degrees float64
}

func (r Rotator) RotateVector(v vec2d.T) vec2d.T {
	v2 := v
	m := r.RotationMatrix()
	m.TransformVec2(&v2)
	return v2
}

// RotateAbout rotates v about center.
func (r Rotator) RotateAbout(v, center vec2d.T) vec2d.T {
	d := r.RotateVector(vec2d.Sub(&v, &center))
	return vec2d.Add(&d, &center)
}

func (r Rotator) RotationMatrix() (m mat2d.T) {
	rad := DegToRad(r.Degrees)

	c := math.Cos(rad)
	s := math.Sin(rad)

	// go3d matrices are column-major: m[col][row].
	m[0][0] = c
	m[0][1] = s
	m[1][0] = -s
	m[1][1] = c

	return m
}
