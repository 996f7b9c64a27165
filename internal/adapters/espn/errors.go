package espn

import "errors"

// Sentinel kinds for league fetch errors.
var (
	ErrNotConfigured = errors.New("espn cookies not configured")
	ErrFetchLeague   = errors.New("league fetch failed")
)
