package client

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig is the TOML shape of a connection profile. Unset fields keep
// their defaults; durations are Go duration strings ("5s", "250ms").
type fileConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`

	ErrorDetection *bool `toml:"error_detection"`

	FieldTerminator   string `toml:"field_terminator"`
	MessageTerminator string `toml:"message_terminator"`

	RetryLimit *int   `toml:"retry_limit"`
	RetryDelay string `toml:"retry_delay"`

	ConnectTimeout string `toml:"connect_timeout"`
	ReadTimeout    string `toml:"read_timeout"`
	WriteTimeout   string `toml:"write_timeout"`

	Institution      string `toml:"institution"`
	TerminalPassword string `toml:"terminal_password"`
	Location         string `toml:"location"`
}

// LoadConfigFile builds a Config from a TOML connection profile.
//
// extra options are applied after the file's settings, so programmatic
// options (e.g. WithLogger, WithTLS) override the profile.
func LoadConfigFile(path string, extra ...Option) (*Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("sip2: decode config %s: %w", path, err)
	}

	opts, err := fc.options()
	if err != nil {
		return nil, fmt.Errorf("sip2: config %s: %w", path, err)
	}

	return NewConfig(fc.Host, fc.Port, append(opts, extra...)...)
}

func (fc *fileConfig) options() ([]Option, error) {
	var opts []Option

	if fc.ErrorDetection != nil {
		opts = append(opts, WithErrorDetection(*fc.ErrorDetection))
	}

	if fc.FieldTerminator != "" {
		if len(fc.FieldTerminator) != 1 {
			return nil, fmt.Errorf("field_terminator must be a single character, got %q", fc.FieldTerminator)
		}
		opts = append(opts, WithFieldTerminator(fc.FieldTerminator[0]))
	}

	if fc.MessageTerminator != "" {
		if len(fc.MessageTerminator) != 1 {
			return nil, fmt.Errorf("message_terminator must be a single character, got %q", fc.MessageTerminator)
		}
		opts = append(opts, WithMessageTerminator(fc.MessageTerminator[0]))
	}

	if fc.RetryLimit != nil {
		opts = append(opts, WithRetryLimit(*fc.RetryLimit))
	}

	durations := []struct {
		value string
		opt   func(time.Duration) Option
	}{
		{fc.RetryDelay, WithRetryDelay},
		{fc.ConnectTimeout, WithConnectTimeout},
		{fc.ReadTimeout, WithReadTimeout},
		{fc.WriteTimeout, WithWriteTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}

		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, err
		}
		opts = append(opts, d.opt(parsed))
	}

	if fc.Institution != "" {
		opts = append(opts, WithInstitutionID(fc.Institution))
	}
	if fc.TerminalPassword != "" {
		opts = append(opts, WithTerminalPassword(fc.TerminalPassword))
	}
	if fc.Location != "" {
		opts = append(opts, WithLocation(fc.Location))
	}

	return opts, nil
}
