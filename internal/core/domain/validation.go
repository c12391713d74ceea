package domain

import "regexp"

// EUI-48, colon or dash separated.
var macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)

// IsValidMAC reports whether s is a BSSID or client address as sent by taps.
func IsValidMAC(s string) bool {
	return macPattern.MatchString(s)
}
