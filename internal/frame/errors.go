package frame

import "errors"

var (
	// ErrConfiguration marks invalid static parameters: malformed grids,
	// non-positive resample durations, unsorted indexes.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnitMismatch marks arithmetic between incompatible physical units,
	// e.g. adding a power frame to an energy frame.
	ErrUnitMismatch = errors.New("unit mismatch")

	// ErrAlignment marks arithmetic between frames whose time indexes cannot
	// be reconciled (differing native interval lengths).
	ErrAlignment = errors.New("index alignment")

	// ErrBounds marks an (hour, month) lookup outside the 288 grid.
	ErrBounds = errors.New("out of bounds")
)
