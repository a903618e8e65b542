package query

import "errors"

// Error variables for parsing user-supplied field values.
var (
	ErrUnknownValue    = errors.New("unknown value")
	ErrInvalidDate     = errors.New("invalid date (want YYYY-MM-DD)")
	ErrExampleNotFound = errors.New("example not found")
)
