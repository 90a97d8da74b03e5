package services

import "errors"

// Domain errors. All are locally recoverable; nothing here is fatal to
// the process.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNoResolvableItems = errors.New("no cart line resolved to an existing dish")
)
