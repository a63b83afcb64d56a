package service

import "errors"

// Error definitions for the service package.
var (
	ErrEmptyText    = errors.New("text is empty")
	ErrMissingVoice = errors.New("no voice resolved")
)
