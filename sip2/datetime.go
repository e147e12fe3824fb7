package sip2

import "time"

// timestampLayout renders the SIP2 18-character date/time stamp: an 8-digit
// date, 4 blanks standing for "local time zone", and a 6-digit time.
const timestampLayout = "20060102    150405"

// FormatTimestamp renders t as a SIP2 transaction date/time stamp.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// Timestamp renders the current local time as a SIP2 transaction date/time
// stamp. Builders use it whenever the caller does not supply an instant.
func Timestamp() string {
	return FormatTimestamp(time.Now())
}
