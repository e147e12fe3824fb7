package sip2

import (
	"fmt"
	"strings"
)

// trailerLen is the length of the "AZ" token plus its 4 hex digits.
const trailerLen = len(FieldChecksum) + checksumWidth

// ParsedResponse is the structured result of decoding one response frame.
type ParsedResponse struct {
	// Code is the 2-digit response message code.
	Code string

	// Fixed maps fixed-field name to the exact substring extracted at the
	// field's declared offset and length, without any trimming.
	Fixed map[string]string

	// Variable maps 2-letter field code to cleaned values in order of
	// appearance. A code that repeats in the frame contributes one entry
	// per occurrence. Values that are blank after control-character
	// stripping and whitespace trimming are not included here.
	Variable map[string][]string

	// Raw holds the untouched code+value tokens of the variable region,
	// before any cleaning, in wire order. Tokens dropped from Variable for
	// being blank are still present here.
	Raw []string

	// Checksum is the trailing 4-character checksum token when the frame
	// was decoded in checksum mode, empty otherwise.
	Checksum string
}

// stripControl trims leading and trailing control characters (ordinals
// 0-31) from s. This cleaning step is implementation folklore shared by
// deployed SIP2 clients rather than published protocol behavior: some ACS
// vendors pad variable values with stray control bytes.
func stripControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r < 32
	})
}

// DecodeConfig controls how a response frame is decoded.
type DecodeConfig struct {
	// FieldTerminator separates variable fields. Defaults to '|'.
	FieldTerminator byte

	// WithChecksum marks the trailing 6 characters of the variable region
	// ("AZ" plus 4 hex digits) as the checksum token rather than field data.
	WithChecksum bool
}

// NewDecodeConfig returns a DecodeConfig with the default field terminator
// and checksum mode off.
func NewDecodeConfig() *DecodeConfig {
	return &DecodeConfig{FieldTerminator: DefaultFieldTerminator}
}

// Decode extracts the schema's fixed fields and the variable-field region
// from one raw response frame. A nil cfg decodes with NewDecodeConfig
// defaults.
//
// The frame is trimmed of surrounding whitespace (which removes the message
// terminator) before any offset arithmetic. In checksum mode the trailing
// "AZ" token is captured into Checksum instead of being treated as field
// data; the AY sequence token, when present, decodes as an ordinary
// variable field.
//
// Decode does not verify the checksum; frame validation happens in the
// exchange loop before a frame ever reaches the decoder.
func (s *Schema) Decode(raw string, cfg *DecodeConfig) (*ParsedResponse, error) {
	if cfg == nil {
		cfg = NewDecodeConfig()
	}

	frame := strings.TrimSpace(raw)

	if len(frame) < len(s.Code) || frame[:len(s.Code)] != s.Code {
		return nil, fmt.Errorf("%w: schema %s, frame %q", ErrResponseCodeMismatch, s.Code, clip(frame, 8))
	}

	if len(frame) < s.VariableStart {
		return nil, fmt.Errorf("%w: schema %s needs %d bytes, got %d",
			ErrResponseTooShort, s.Code, s.VariableStart, len(frame))
	}

	resp := &ParsedResponse{
		Code:     s.Code,
		Fixed:    make(map[string]string, len(s.Fixed)),
		Variable: make(map[string][]string),
	}

	for _, f := range s.Fixed {
		resp.Fixed[f.Name] = frame[f.Offset : f.Offset+f.Length]
	}

	region := frame[s.VariableStart:]

	if cfg.WithChecksum && len(region) >= trailerLen {
		resp.Checksum = region[len(region)-checksumWidth:]
		region = region[:len(region)-trailerLen]
	}

	s.decodeVariable(resp, region, cfg.FieldTerminator)

	return resp, nil
}

// decodeVariable splits the variable region on the field terminator and
// files each token under its 2-letter code.
func (s *Schema) decodeVariable(resp *ParsedResponse, region string, terminator byte) {
	for _, token := range strings.Split(region, string(terminator)) {
		if token == "" {
			// Artifact of the trailing field terminator, not a field.
			continue
		}

		resp.Raw = append(resp.Raw, token)

		if len(token) < 2 {
			continue
		}

		code := token[:2]
		value := stripControl(token[2:])

		if strings.TrimSpace(value) == "" {
			// Blank or all-control payload: kept in Raw, dropped here.
			continue
		}

		resp.Variable[code] = append(resp.Variable[code], value)
	}
}

// DecodeResponse looks up the schema for the frame's leading message code
// and decodes against it. A nil cfg decodes with NewDecodeConfig defaults.
func DecodeResponse(raw string, cfg *DecodeConfig) (*ParsedResponse, error) {
	frame := strings.TrimSpace(raw)
	if len(frame) < 2 {
		return nil, fmt.Errorf("%w: frame too short for a message code", ErrUnknownSchema)
	}

	schema, ok := SchemaFor(frame[:2])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, frame[:2])
	}

	return schema.Decode(frame, cfg)
}

// --- Convenience accessors ---

// FixedField returns the named fixed field, or "" when absent.
func (r *ParsedResponse) FixedField(name string) string {
	return r.Fixed[name]
}

// Field returns the first cleaned value of the given variable-field code,
// or "" when the code is absent.
func (r *ParsedResponse) Field(code string) string {
	values := r.Variable[code]
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

// Fields returns every cleaned value of the given variable-field code in
// order of appearance.
func (r *ParsedResponse) Fields(code string) []string {
	return r.Variable[code]
}

// OK reports whether the response's one-character "Ok" fixed field is "1".
// It returns false for response types without an "Ok" field.
func (r *ParsedResponse) OK() bool {
	return r.Fixed["Ok"] == "1"
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}

	return s
}
