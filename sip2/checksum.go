package sip2

import (
	"fmt"
	"strings"
)

// checksumWidth is the number of hex digits in the SIP2 checksum token.
const checksumWidth = 4

// Checksum computes the SIP2 integrity code over s.
//
// The code is the arithmetic sum of all byte ordinals, truncated to 16 bits
// and two's-complement negated, rendered as exactly 4 uppercase hexadecimal
// digits. Adding the checksum's own value back to the byte sum of the
// message therefore yields zero in 16-bit arithmetic.
func Checksum(s string) string {
	var sum uint16
	for i := 0; i < len(s); i++ {
		sum += uint16(s[i])
	}

	return fmt.Sprintf("%04X", -sum)
}

// VerifyChecksum reports whether the trailing 4 characters of msg equal the
// checksum of everything preceding them.
//
// msg is trimmed of surrounding whitespace (including the message
// terminator) first. The comparison is an exact, case-sensitive string
// match. Messages shorter than the checksum itself never verify.
func VerifyChecksum(msg string) bool {
	msg = strings.TrimSpace(msg)
	if len(msg) < checksumWidth {
		return false
	}

	body := msg[:len(msg)-checksumWidth]
	wire := msg[len(msg)-checksumWidth:]

	return Checksum(body) == wire
}
