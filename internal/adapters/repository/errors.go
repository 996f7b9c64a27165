package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNoSnapshot = errors.New("no advisory snapshot yet")
	ErrNotFound   = errors.New("player not found")
)
