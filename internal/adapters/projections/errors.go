package projections

import "errors"

// Sentinel kinds for projection loading errors.
var (
	ErrReadProjections = errors.New("read projections failed")
)
