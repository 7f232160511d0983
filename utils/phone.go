package utils

import "strings"

const defaultCountryCode = "+91"

// NormalizePhone converts a stored raw phone string to an E.164 number.
// Pure and total: junk input still yields a string, never a panic.
//
//	"9876543210"    -> "+919876543210" (10 digits, default country code)
//	"+919876543210" -> "+919876543210" (already prefixed, unchanged)
//	"919876543210"  -> "+919876543210" (digits only, just add "+")
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 10 {
		return defaultCountryCode + digits
	}
	if strings.HasPrefix(raw, "+") {
		return raw
	}
	return "+" + digits
}
