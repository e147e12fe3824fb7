// Package sip2 implements the message layer of the 3M Standard Interchange
// Protocol version 2.00 (SIP2), the line-oriented text protocol spoken
// between a self-check terminal (SC) and an automated circulation system
// (ACS).
//
// # Wire Format
//
// Every SIP2 message is a single CR-terminated line:
//
//	<2-digit code><fixed fields><variable fields>[AY<seq>][AZ<checksum>]<CR>
//
// Fixed fields occupy exact, pre-declared character widths at known offsets
// and are right-justified, space-padded. Variable fields are
// "<2-letter code><value>" tokens separated by a field terminator
// (| by default), order-significant but length-flexible. When error
// detection is enabled, a rotating single-digit sequence token (AY) and a
// 4-hex-digit checksum token (AZ) are appended before the terminator.
//
// # Package Contents
//
// This package is pure codec with no I/O:
//
//   - [Message] builds outgoing requests field by field.
//   - Typed builders (e.g. [CheckoutRequest], [LoginRequest]) construct
//     each request type with fields in the protocol-mandated order and
//     validate numeric argument domains up front.
//   - [Schema] describes the fixed-field layout of each response type;
//     [Schema.Decode] extracts fixed fields by offset and variable fields by
//     splitting on the field terminator.
//   - [Checksum] and [VerifyChecksum] implement the SIP2 integrity code.
//   - [Sequence] produces the rotating AY digit.
//
// Transport and the request/response exchange loop live in the client
// package; sip2 deliberately knows nothing about sockets.
package sip2
