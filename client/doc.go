// Package client provides the transport and exchange layer for SIP2: it
// connects to an ACS over TCP (optionally TLS), sends encoded requests,
// frames responses by the message terminator, validates them with the SIP2
// checksum, and retries corrupted exchanges up to a configured bound.
//
// # Layering
//
// The sip2 package is pure codec; this package owns everything stateful:
//
//   - [Transport] is the byte-level capability the exchange loop consumes.
//     [Connection] creates a TCP transport by default; tests and exotic
//     deployments substitute their own via [WithTransport].
//   - [Connection] runs one synchronous exchange at a time: write the fully
//     encoded request, read single bytes until the terminator, verify the
//     checksum, and resend the identical bytes on corruption. It owns the
//     per-connection sequence counter and retry counter.
//   - [Session] is a convenience facade sequencing typed request/response
//     pairs (login, patron status, checkout, ...) over one Connection,
//     filling institution and terminal credentials from the configuration.
//
// # Concurrency
//
// A Connection is strictly single-threaded: one logical exchange runs to
// completion before the next begins, and no state is shared between
// connections except the process-wide schema registry. A deployment talking
// to several ACS endpoints simply creates one Connection per endpoint.
package client
