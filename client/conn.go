package client

import (
	"fmt"
	"strings"

	"github.com/libsip/go-sip2/internal/pool"
	"github.com/libsip/go-sip2/logger"
	"github.com/libsip/go-sip2/sip2"
)

// Connection manages one SIP2 connection to an ACS: it encodes requests,
// writes them through the Transport, frames responses by the message
// terminator, validates checksums, and retries corrupted exchanges.
//
// A Connection is NOT goroutine-safe. SIP2 allows no pipelining: one
// logical exchange runs to completion before the next starts, so all
// mutable state (sequence counter, retry counter) is owned by the single
// calling goroutine. For multiple ACS endpoints, create one Connection
// each.
type Connection struct {
	cfg       *Config
	transport Transport
	logger    logger.Logger

	// seq feeds the AY trailer token. It lives for the whole logical
	// connection and is never reset mid-connection.
	seq *sip2.Sequence

	// retryCount is the number of consecutive checksum-validation failures.
	// Reset to zero by any successfully validated frame.
	retryCount int

	opened  bool
	closed  bool
	metrics ConnectionMetrics
}

// NewConnection creates a Connection with the given configuration.
//
// The default transport is TCP (TLS when the config carries a TLS
// configuration); override it with WithTransport for tests or serial-line
// deployments.
func NewConnection(cfg *Config, opts ...ConnectionOption) (*Connection, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	c := &Connection{
		cfg:    cfg,
		logger: cfg.logger,
		seq:    sip2.NewSequence(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = newTCPTransport(cfg)
	}

	return c, nil
}

// ConnectionOption customizes a Connection at construction time.
type ConnectionOption func(*Connection)

// WithTransport substitutes the byte-level transport.
func WithTransport(t Transport) ConnectionOption {
	return func(c *Connection) {
		c.transport = t
	}
}

// Open establishes the transport connection to the ACS.
func (c *Connection) Open() error {
	if c.opened {
		return nil
	}

	if err := c.transport.Connect(c.cfg.host, c.cfg.port); err != nil {
		return err
	}

	c.opened = true
	c.closed = false
	c.logger.Debug("sip2: connection opened", "addr", c.cfg.Addr())

	return nil
}

// Close tears down the transport connection.
func (c *Connection) Close() error {
	if !c.opened {
		return nil
	}

	c.opened = false
	c.closed = true
	c.logger.Debug("sip2: connection closed", "addr", c.cfg.Addr())

	return c.transport.Close()
}

// Config returns the connection's configuration.
func (c *Connection) Config() *Config { return c.cfg }

// Metrics returns the connection's metrics counters.
func (c *Connection) Metrics() *ConnectionMetrics { return &c.metrics }

// Exchange performs one logical request/response exchange: encode msg with
// this connection's trailer settings, write it, read a frame, validate it,
// and retry the identical bytes on corruption up to the configured bound.
//
// The returned string is the raw validated response frame, terminator
// included; decode it with the sip2 package. The resend request message
// type (97) is encoded without the sequence/checksum trailer regardless of
// configuration.
func (c *Connection) Exchange(msg *sip2.Message) (string, error) {
	if err := c.ensureOpen(); err != nil {
		return "", err
	}

	return c.exchangeWire(c.EncodeMessage(msg))
}

// EncodeMessage renders msg with this connection's trailer and terminator
// settings, consuming a sequence digit when the AY token is enabled.
func (c *Connection) EncodeMessage(msg *sip2.Message) string {
	return msg.Encode(c.encodeConfig(msg))
}

// ExchangeText performs an exchange with an already encoded frame. The
// Session facade uses it to retransmit byte-identical requests when the ACS
// answers with a Request SC Resend (96).
func (c *Connection) ExchangeText(wire string) (string, error) {
	if err := c.ensureOpen(); err != nil {
		return "", err
	}

	return c.exchangeWire(wire)
}

// ensureOpen distinguishes a connection that was closed from one that was
// never opened.
func (c *Connection) ensureOpen() error {
	if c.opened {
		return nil
	}

	if c.closed {
		return ErrConnClosed
	}

	return ErrNotConnected
}

// DecodeConfig returns the decode settings matching this connection's wire
// configuration, for handing frames returned by Exchange to the decoder.
func (c *Connection) DecodeConfig() *sip2.DecodeConfig {
	return &sip2.DecodeConfig{
		FieldTerminator: c.cfg.fieldTerminator,
		WithChecksum:    c.cfg.withChecksum,
	}
}

func (c *Connection) encodeConfig(msg *sip2.Message) *sip2.EncodeConfig {
	ec := &sip2.EncodeConfig{
		FieldTerminator:   c.cfg.fieldTerminator,
		MessageTerminator: c.cfg.messageTerminator,
	}

	// The resend request must stay parseable even when the two ends
	// disagree about error detection, so it never carries the trailer.
	if msg.Code() == sip2.CodeRequestACSResend {
		return ec
	}

	ec.WithSequence = c.cfg.withSequence
	ec.WithChecksum = c.cfg.withChecksum
	ec.Sequence = c.seq

	return ec
}

// attemptResult classifies the outcome of a single exchange attempt so the
// retry loop can decide whether to finish, resend, or abort.
type attemptResult int

const (
	attemptOK    attemptResult = iota // Frame received and validated.
	attemptRetry                      // Checksum failure; resend the same bytes.
	attemptAbort                      // Non-retryable failure (write or bare read error).
)

// exchangeWire runs the retry loop over one fully encoded request.
//
// Every resend transmits the identical original bytes; the request is not
// re-encoded, so the sequence digit and checksum stay stable across
// retries, which is what lets the ACS recognize the resend.
func (c *Connection) exchangeWire(wire string) (string, error) {
	c.metrics.incExchangeCount()

	for {
		result, frame, err := c.attempt(wire)

		switch result {
		case attemptOK:
			c.retryCount = 0

			return frame, nil

		case attemptRetry:
			c.retryCount++
			c.metrics.incRetryCount()
			c.logger.Debug("sip2: exchange retry",
				"retry", c.retryCount,
				"maxRetry", c.cfg.retryLimit,
				"error", err,
			)

			if c.retryCount >= c.cfg.retryLimit {
				c.metrics.incExchangeErrCount()
				c.logger.Error("sip2: retries exhausted",
					"retries", c.retryCount,
					"error", err,
				)

				return "", fmt.Errorf("%w: last error: %w", ErrRetriesExhausted, err)
			}

			c.retryDelay()

		case attemptAbort:
			c.metrics.incExchangeErrCount()

			return "", err
		}
	}
}

// attempt performs one send/read/validate cycle.
func (c *Connection) attempt(wire string) (attemptResult, string, error) {
	if _, err := c.transport.Write([]byte(wire)); err != nil {
		// Transport-level fault, distinct from checksum corruption: abort
		// without retry.
		c.metrics.incSendErrCount()

		return attemptAbort, "", fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	frame, readErr := c.readFrame()

	if !c.cfg.withChecksum {
		// Validation disabled: any complete frame passes. A read failure
		// before the terminator leaves nothing to validate against, so it
		// surfaces directly.
		if readErr != nil {
			return attemptAbort, "", fmt.Errorf("%w: %w", ErrReadFailed, readErr)
		}

		return attemptOK, frame, nil
	}

	if sip2.VerifyChecksum(frame) {
		return attemptOK, frame, nil
	}

	c.metrics.incChecksumFailCount()

	if readErr != nil {
		// Truncated frame: transport gave up before the terminator. The
		// incomplete frame fails validation and consumes a retry like any
		// other corruption.
		c.logger.Debug("sip2: truncated frame failed validation",
			"got", len(frame),
			"readError", readErr,
		)

		return attemptRetry, "", fmt.Errorf("%w: truncated frame: %w", ErrChecksumMismatch, readErr)
	}

	return attemptRetry, "", ErrChecksumMismatch
}

// readFrame accumulates single bytes from the transport until the message
// terminator arrives. On a read error it returns whatever partial frame was
// accumulated alongside the error; the caller folds the partial frame into
// checksum validation.
func (c *Connection) readFrame() (string, error) {
	var sb strings.Builder

	for {
		b, err := c.transport.ReadByte()
		if err != nil {
			return sb.String(), err
		}

		sb.WriteByte(b)

		if b == c.cfg.messageTerminator {
			return sb.String(), nil
		}
	}
}

// retryDelay pauses before a resend when the configuration asks for it.
func (c *Connection) retryDelay() {
	if c.cfg.retryDelay <= 0 {
		return
	}

	t := pool.GetTimer(c.cfg.retryDelay)
	defer pool.PutTimer(t)

	<-t.C
}
