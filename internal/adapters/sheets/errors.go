package sheets

import "errors"

// Sentinel kinds for spreadsheet fetch errors.
var (
	ErrFetchSheet = errors.New("sheet fetch failed")
)
