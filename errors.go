package maze

import "errors"

var (
	// ErrInvalidInput is returned when the grid, start or goal violate the
	// search preconditions: non-square or empty grid, out-of-bounds or
	// blocked endpoints.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPath is returned by Path.Validate.
	ErrInvalidPath = errors.New("invalid path")
)
