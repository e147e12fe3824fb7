package client

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/libsip/go-sip2/logger"
	"github.com/libsip/go-sip2/sip2"
)

// Default configuration values.
const (
	DefaultRetryLimit = 3
	DefaultRetryDelay = 0 * time.Millisecond

	DefaultConnectTimeout = 3 * time.Second
	DefaultReadTimeout    = 10 * time.Second
	DefaultWriteTimeout   = 3 * time.Second
)

// MaxRetryLimit bounds the configurable retry limit. A bound this high is
// already pathological; it exists to catch unit mistakes (milliseconds
// passed as a count and the like).
const MaxRetryLimit = 99

// Config holds all configuration for one SIP2 connection.
type Config struct {
	host string
	port int

	// Error detection trailer toggles: AY sequence token and AZ checksum
	// token are independently controllable, though deployments almost
	// always switch them together.
	withSequence bool
	withChecksum bool

	// Wire delimiters. A handful of ACS vendors deviate from the published
	// defaults, so both are configurable.
	fieldTerminator   byte
	messageTerminator byte

	// retryLimit is the number of checksum-validation failures after which
	// an exchange fails permanently. retryDelay is an optional pause
	// between a failure and the resend.
	retryLimit int
	retryDelay time.Duration

	connectTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration

	tlsConfig *tls.Config

	// Session defaults, consumed by the Session facade.
	institutionID    string
	terminalPassword string
	location         string

	logger logger.Logger
}

// NewConfig creates a SIP2 connection configuration.
//
// host is the ACS address, port its TCP port. opts are functional options
// applied in order; see the With* functions.
func NewConfig(host string, port int, opts ...Option) (*Config, error) {
	cfg := &Config{
		withSequence:      true,
		withChecksum:      true,
		fieldTerminator:   sip2.DefaultFieldTerminator,
		messageTerminator: sip2.DefaultMessageTerminator,
		retryLimit:        DefaultRetryLimit,
		retryDelay:        DefaultRetryDelay,
		connectTimeout:    DefaultConnectTimeout,
		readTimeout:       DefaultReadTimeout,
		writeTimeout:      DefaultWriteTimeout,
		logger:            logger.GetLogger(),
	}

	if err := cfg.setHost(host); err != nil {
		return nil, err
	}
	if err := cfg.setPort(port); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (cfg *Config) setHost(host string) error {
	if ip := net.ParseIP(host); ip != nil {
		cfg.host = host
		return nil
	}

	host = strings.TrimPrefix(host, ".")
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return errors.New("sip2: host must not be empty")
	}
	cfg.host = host

	return nil
}

func (cfg *Config) setPort(port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("sip2: port %d out of range [0, 65535]", port)
	}
	cfg.port = port

	return nil
}

// --- Getters ---

// Host returns the configured ACS host address.
func (cfg *Config) Host() string { return cfg.host }

// Port returns the configured TCP port.
func (cfg *Config) Port() int { return cfg.port }

// Addr returns "host:port".
func (cfg *Config) Addr() string { return fmt.Sprintf("%s:%d", cfg.host, cfg.port) }

// WithSequenceEnabled returns true if the AY sequence token is appended to requests.
func (cfg *Config) WithSequenceEnabled() bool { return cfg.withSequence }

// WithChecksumEnabled returns true if the AZ checksum token is appended to
// requests and verified on responses.
func (cfg *Config) WithChecksumEnabled() bool { return cfg.withChecksum }

// FieldTerminator returns the variable-field terminator character.
func (cfg *Config) FieldTerminator() byte { return cfg.fieldTerminator }

// MessageTerminator returns the frame terminator character.
func (cfg *Config) MessageTerminator() byte { return cfg.messageTerminator }

// RetryLimit returns the maximum number of checksum failures per exchange.
func (cfg *Config) RetryLimit() int { return cfg.retryLimit }

// RetryDelay returns the pause inserted before each resend.
func (cfg *Config) RetryDelay() time.Duration { return cfg.retryDelay }

// InstitutionID returns the default AO institution field value.
func (cfg *Config) InstitutionID() string { return cfg.institutionID }

// TerminalPassword returns the default AC terminal password field value.
func (cfg *Config) TerminalPassword() string { return cfg.terminalPassword }

// Location returns the default CP location code field value.
func (cfg *Config) Location() string { return cfg.location }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// --- Option ---

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithErrorDetection enables or disables both error-detection trailer
// tokens (AY sequence and AZ checksum) together. Both are enabled by
// default.
func WithErrorDetection(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.withSequence = enabled
		cfg.withChecksum = enabled

		return nil
	})
}

// WithSequence enables or disables only the AY sequence token.
func WithSequence(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.withSequence = enabled

		return nil
	})
}

// WithChecksum enables or disables only the AZ checksum token and the
// corresponding response validation.
func WithChecksum(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.withChecksum = enabled

		return nil
	})
}

// WithFieldTerminator sets the variable-field terminator character.
func WithFieldTerminator(c byte) Option {
	return optFunc(func(cfg *Config) error {
		if c == 0 {
			return errors.New("sip2: field terminator must not be NUL")
		}
		if c == cfg.messageTerminator {
			return errors.New("sip2: field terminator must differ from message terminator")
		}
		cfg.fieldTerminator = c

		return nil
	})
}

// WithMessageTerminator sets the frame terminator character.
func WithMessageTerminator(c byte) Option {
	return optFunc(func(cfg *Config) error {
		if c == 0 {
			return errors.New("sip2: message terminator must not be NUL")
		}
		if c == cfg.fieldTerminator {
			return errors.New("sip2: message terminator must differ from field terminator")
		}
		cfg.messageTerminator = c

		return nil
	})
}

// WithRetryLimit sets the number of checksum-validation failures after
// which an exchange fails permanently.
func WithRetryLimit(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 || n > MaxRetryLimit {
			return fmt.Errorf("sip2: retry limit %d out of range [1, %d]", n, MaxRetryLimit)
		}
		cfg.retryLimit = n

		return nil
	})
}

// WithRetryDelay sets a pause between a validation failure and the resend.
// Zero (the default) resends immediately.
func WithRetryDelay(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < 0 {
			return errors.New("sip2: retry delay must not be negative")
		}
		cfg.retryDelay = d

		return nil
	})
}

// WithConnectTimeout sets the TCP dial (and TLS handshake) timeout.
func WithConnectTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("sip2: connect timeout must be positive")
		}
		cfg.connectTimeout = d

		return nil
	})
}

// WithReadTimeout sets the per-read deadline while waiting for response bytes.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("sip2: read timeout must be positive")
		}
		cfg.readTimeout = d

		return nil
	})
}

// WithWriteTimeout sets the deadline for writing one request.
func WithWriteTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("sip2: write timeout must be positive")
		}
		cfg.writeTimeout = d

		return nil
	})
}

// WithTLS enables TLS on the transport with the given configuration.
func WithTLS(tc *tls.Config) Option {
	return optFunc(func(cfg *Config) error {
		if tc == nil {
			return errors.New("sip2: TLS config must not be nil")
		}
		cfg.tlsConfig = tc

		return nil
	})
}

// WithInstitutionID sets the default AO institution field for the Session facade.
func WithInstitutionID(id string) Option {
	return optFunc(func(cfg *Config) error {
		cfg.institutionID = id

		return nil
	})
}

// WithTerminalPassword sets the default AC terminal password for the Session facade.
func WithTerminalPassword(pwd string) Option {
	return optFunc(func(cfg *Config) error {
		cfg.terminalPassword = pwd

		return nil
	})
}

// WithLocation sets the default CP location code for the Session facade.
func WithLocation(location string) Option {
	return optFunc(func(cfg *Config) error {
		cfg.location = location

		return nil
	})
}

// WithLogger sets the logger for the connection.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("sip2: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
