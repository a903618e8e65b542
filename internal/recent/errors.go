package recent

import "errors"

// Error variables for recent-queries operations.
var (
	ErrIndexOutOfRange = errors.New("no recent query at that position")
	ErrCorrupt         = errors.New("recent queries file is corrupt")
	ErrEmptyQuery      = errors.New("nothing to save: query is empty")
)
