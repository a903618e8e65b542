package config

import "errors"

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrRecentFileEmpty    = errors.New("recent_file cannot be empty")
	ErrMaxRecentRange     = errors.New("max_recent must be between 1 and 20")
)
