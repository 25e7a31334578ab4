// ABOUTME: Bridge error values
// ABOUTME: Sentinels callers match with errors.Is
package bridge

import "errors"

var (
	// ErrUnsupportedRate means the requested rate is not exactly in the rate table
	ErrUnsupportedRate = errors.New("sample rate not supported")

	// ErrSinkUnavailable means the sink factory could not create a stream
	ErrSinkUnavailable = errors.New("audio sink unavailable")

	// ErrUnsupportedMode is returned for encoded (passthrough) streams
	ErrUnsupportedMode = errors.New("encoded audio streams not supported")

	// ErrInvalidFormat means the stream format failed validation
	ErrInvalidFormat = errors.New("invalid stream format")

	// ErrInvalidRateTable means a rate table is empty, non-positive or not strictly increasing
	ErrInvalidRateTable = errors.New("invalid rate table")

	// ErrNoFactory means the bridge was configured without a sink factory
	ErrNoFactory = errors.New("no sink factory")
)
