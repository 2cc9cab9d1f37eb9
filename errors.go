package interp

import "errors"

// Every message carries the "interp: " prefix. Call sites wrap these with
// fmt.Errorf("%w: ...") to name the offending sizes; match with errors.Is.
var (
	// ErrInvalidInput is returned when sample coordinates can not be indexed
	// or a query is malformed.
	ErrInvalidInput = errors.New("interp: invalid input")

	// ErrInvalidConfig is returned for out of range configuration values.
	ErrInvalidConfig = errors.New("interp: invalid configuration")

	// ErrDimensionMismatch signals that two collections that must agree in
	// length or shape do not (samples vs values, surface vs grid).
	ErrDimensionMismatch = errors.New("interp: dimension mismatch")

	// ErrShape signals a coordinate with the wrong number of components, or
	// an array too small for the requested operation.
	ErrShape = errors.New("interp: invalid shape")

	// ErrGridShape signals grid axes of different shapes or an empty grid.
	ErrGridShape = errors.New("interp: grid shape mismatch")

	// ErrNoValidNeighbors is returned when no grid node has a neighbor within
	// the configured maximum distance.
	ErrNoValidNeighbors = errors.New("interp: no grid node has a valid neighbor")

	// ErrNotEnoughPoints is returned by variogram based producers for fewer
	// than three samples.
	ErrNotEnoughPoints = errors.New("interp: not enough points")

	// ErrDegenerateGeometry is returned when the samples can not support a
	// variogram fit (collinear points, a single distance lag).
	ErrDegenerateGeometry = errors.New("interp: degenerate sample geometry")

	// ErrUnknownModel is returned for an unsupported variogram model name.
	ErrUnknownModel = errors.New("interp: unknown variogram model")
)
