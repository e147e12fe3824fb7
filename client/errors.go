package client

import "errors"

// Sentinel errors for the exchange layer.
var (
	// ErrNotConnected indicates an exchange was attempted before Open or
	// after Close.
	ErrNotConnected = errors.New("sip2: connection is not open")

	// ErrConnClosed indicates the connection closed underneath an exchange.
	ErrConnClosed = errors.New("sip2: connection closed")

	// ErrWriteFailed indicates the transport rejected the request bytes.
	// Write failures are terminal: the exchange is aborted without retry.
	ErrWriteFailed = errors.New("sip2: transport write failed")

	// ErrReadFailed indicates the transport failed before a complete frame
	// arrived while checksum validation was disabled, leaving no way to
	// recover the partial frame.
	ErrReadFailed = errors.New("sip2: transport read failed")

	// ErrChecksumMismatch indicates a received frame failed checksum
	// validation. Recovered locally by bounded retry.
	ErrChecksumMismatch = errors.New("sip2: response checksum mismatch")

	// ErrRetriesExhausted indicates the retry bound was reached without a
	// validly checksummed response.
	ErrRetriesExhausted = errors.New("sip2: retries exhausted without valid response")

	// ErrUnexpectedResponse indicates the ACS answered with a different
	// message type than the request expects.
	ErrUnexpectedResponse = errors.New("sip2: unexpected response message type")
)

// Configuration errors.
var (
	// ErrConfigNil indicates that a nil Config was provided.
	ErrConfigNil = errors.New("sip2: config is nil")
)
