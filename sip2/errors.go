package sip2

import "errors"

// Sentinel errors for request builder argument validation.
//
// Builders validate numeric argument domains before any message text is
// produced, so an invalid argument never reaches the wire.
var (
	// ErrInvalidStatusCode indicates an SC status code outside [0, 2].
	ErrInvalidStatusCode = errors.New("sip2: invalid status code, should be in range of [0, 2]")

	// ErrInvalidFeeType indicates a fee type outside [1, 99].
	ErrInvalidFeeType = errors.New("sip2: invalid fee type, should be in range of [1, 99]")

	// ErrInvalidPaymentType indicates a payment type outside [0, 2].
	ErrInvalidPaymentType = errors.New("sip2: invalid payment type, should be in range of [0, 2]")

	// ErrInvalidHoldMode indicates a hold mode character other than '+', '-' or '*'.
	ErrInvalidHoldMode = errors.New("sip2: invalid hold mode, should be one of '+', '-', '*'")

	// ErrInvalidHoldType indicates a hold type digit outside [1, 9].
	ErrInvalidHoldType = errors.New("sip2: invalid hold type, should be in range of [1, 9]")

	// ErrInvalidSummaryIndex indicates a patron information summary index outside [0, 9].
	ErrInvalidSummaryIndex = errors.New("sip2: invalid summary index, should be in range of [0, 9]")

	// ErrInvalidLanguage indicates a language code outside [0, 999].
	ErrInvalidLanguage = errors.New("sip2: invalid language code, should be in range of [0, 999]")
)

// Sentinel errors for response decoding.
var (
	// ErrUnknownSchema indicates that no schema is registered for a response code.
	ErrUnknownSchema = errors.New("sip2: no schema registered for response code")

	// ErrResponseTooShort indicates that a response is shorter than the
	// fixed-field region its schema declares.
	ErrResponseTooShort = errors.New("sip2: response shorter than schema fixed-field region")

	// ErrResponseCodeMismatch indicates that a response begins with a
	// different message code than the schema it was decoded against.
	ErrResponseCodeMismatch = errors.New("sip2: response code does not match schema")
)
