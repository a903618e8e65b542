package cli

import "errors"

var (
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrFlagRequiresArg = errors.New("flag requires an argument")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrIndexRequired   = errors.New("entry number is required")
	ErrInvalidIndex    = errors.New("entry number must be a positive integer")
	ErrTooManyArgs     = errors.New("too many arguments")
)
