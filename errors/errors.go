package errors

import "fmt"

var (
	ErrEmptyContent      = fmt.Errorf("message content is empty")
	ErrContentTooLong    = fmt.Errorf("message content exceeds maximum length")
	ErrInvalidIdentifier = fmt.Errorf("invalid identifier")
	ErrInvalidTheme      = fmt.Errorf("invalid theme value")
	ErrEmptyWords        = fmt.Errorf("no words have been found")
	ErrStoreUnavailable  = fmt.Errorf("settings store unavailable")
	ErrRetriesExhausted  = fmt.Errorf("retries exhausted")
)
