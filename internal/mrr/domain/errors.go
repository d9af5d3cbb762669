package domain

import "errors"

var (
	// ErrSourceUnavailable is returned when the subscription snapshot
	// cannot be read; no partial series is ever produced.
	ErrSourceUnavailable = errors.New("subscription source unavailable")

	ErrMalformedRecord  = errors.New("malformed subscription record")
	ErrIneligibleStatus = errors.New("subscription status not eligible")
)
