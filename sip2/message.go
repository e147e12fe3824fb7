package sip2

import "strings"

// Default wire delimiters. Both are configurable per connection because a
// handful of ACS vendors deviate from the published defaults.
const (
	// DefaultFieldTerminator separates and terminates variable fields.
	DefaultFieldTerminator byte = '|'

	// DefaultMessageTerminator ends every request and response frame.
	DefaultMessageTerminator byte = '\r'
)

// maxVariableLen is the maximum number of value characters emitted for a
// single variable field; longer values keep only their first 255 characters.
const maxVariableLen = 255

type fixedField struct {
	value string
	width int
}

type variableField struct {
	code     string
	value    string
	optional bool
}

// Message accumulates the fields of one outgoing SIP2 request.
//
// Fields are appended in the order the protocol mandates for the message
// type: all fixed fields first, then variable fields. Once any variable
// field has been appended, further AppendFixed calls are silently refused
// (they return false and leave the message unchanged); see AppendFixed.
//
// A Message is a pure value until Encode renders it; it performs no I/O and
// holds no connection state.
type Message struct {
	code        string
	fixed       []fixedField
	variable    []variableField
	hasVariable bool
}

// NewMessage creates a Message with the given 2-digit message type code.
func NewMessage(code string) *Message {
	return &Message{code: code}
}

// Code returns the 2-digit message type code.
func (m *Message) Code() string { return m.code }

// AppendFixed appends a fixed-width field.
//
// The rendered segment is exactly width characters: values longer than
// width keep only their first width characters, shorter values are
// right-justified and left-padded with spaces. Numeric values requiring
// zero-padding must be pre-formatted by the caller.
//
// AppendFixed reports whether the field was appended. It returns false,
// leaving the message unchanged, when a variable field has already been
// appended to this message.
func (m *Message) AppendFixed(value string, width int) bool {
	if m.hasVariable {
		return false
	}

	m.fixed = append(m.fixed, fixedField{value: value, width: width})

	return true
}

// AppendVariable appends a variable field with the given 2-letter code.
//
// If optional is true and value is empty, the field is omitted entirely:
// no code and no field terminator are emitted. Any AppendVariable call,
// including an omitted optional one, permanently disables further fixed
// appends for this message.
func (m *Message) AppendVariable(code, value string, optional bool) {
	m.hasVariable = true

	if optional && value == "" {
		return
	}

	m.variable = append(m.variable, variableField{code: code, value: value, optional: optional})
}

// EncodeConfig controls how a Message is rendered to wire text.
type EncodeConfig struct {
	// FieldTerminator separates and terminates variable fields.
	FieldTerminator byte

	// MessageTerminator ends the frame.
	MessageTerminator byte

	// WithSequence appends the AY token with the next digit from Sequence.
	WithSequence bool

	// WithChecksum appends the AZ token with the checksum of everything
	// rendered so far, including the literal "AZ" but not the digest itself.
	WithChecksum bool

	// Sequence supplies the AY digit. Required when WithSequence is true.
	Sequence *Sequence
}

// NewEncodeConfig returns an EncodeConfig with the default terminators and
// no error-detection trailer.
func NewEncodeConfig() *EncodeConfig {
	return &EncodeConfig{
		FieldTerminator:   DefaultFieldTerminator,
		MessageTerminator: DefaultMessageTerminator,
	}
}

// Encode renders the message to its wire form:
//
//	<code><fixed fields><variable fields>[AY<seq>][AZ<checksum>]<terminator>
//
// Encode does not mutate the message and may be called more than once,
// though each call with WithSequence set consumes a sequence digit.
func (m *Message) Encode(cfg *EncodeConfig) string {
	var sb strings.Builder

	sb.WriteString(m.code)

	for _, f := range m.fixed {
		sb.WriteString(padFixed(f.value, f.width))
	}

	for _, v := range m.variable {
		sb.WriteString(v.code)

		value := v.value
		if len(value) > maxVariableLen {
			value = value[:maxVariableLen]
		}
		sb.WriteString(value)
		sb.WriteByte(cfg.FieldTerminator)
	}

	if cfg.WithSequence && cfg.Sequence != nil {
		sb.WriteString(FieldSequenceNumber)
		sb.WriteByte(byte('0' + cfg.Sequence.Next()))
	}

	if cfg.WithChecksum {
		sb.WriteString(FieldChecksum)
		sb.WriteString(Checksum(sb.String()))
	}

	sb.WriteByte(cfg.MessageTerminator)

	return sb.String()
}

// padFixed truncates value to at most width characters (keeping the head)
// and right-justifies it within a field of exactly width characters.
func padFixed(value string, width int) string {
	if len(value) > width {
		return value[:width]
	}
	if len(value) < width {
		return strings.Repeat(" ", width-len(value)) + value
	}

	return value
}
