package predictor

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("predictor server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("predictor request timed out")

	// ErrInvalidOutput indicates the model reply held no usable prediction.
	ErrInvalidOutput = errors.New("invalid predictor output")

	// ErrRetryExhausted indicates all retry attempts failed.
	ErrRetryExhausted = errors.New("predictor retry attempts exhausted")

	// ErrDisabled is returned when the predictor is switched off in config.
	ErrDisabled = errors.New("predictor disabled")
)
