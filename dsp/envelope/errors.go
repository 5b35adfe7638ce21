package envelope

import "errors"

var (
	// ErrEmptyInput is returned when analysis receives no samples.
	ErrEmptyInput = errors.New("envelope: empty input")
	// ErrSilentInput is returned when analysis receives only zeros.
	ErrSilentInput = errors.New("envelope: input is silent")
)
