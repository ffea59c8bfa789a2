// Package phone normalizes Nigerian phone numbers to a canonical
// +234XXXXXXXXXX form and validates mobile numbers against the
// NCC mobile prefixes.
package phone

import (
	"regexp"
	"strings"
)

var (
	nonDigit = regexp.MustCompile(`\D`)

	// Nigerian mobiles: +234, then 7/8/9, then 0/1, then 8 digits.
	mobilePattern = regexp.MustCompile(`^\+234[789][01]\d{8}$`)
)

// Normalize converts raw user input to canonical form: all separators
// stripped, the local "0" trunk prefix replaced by the "234" country code,
// and a leading "+" added. Already-normalized input passes through
// unchanged, including a leading "+".
func Normalize(raw string) string {
	clean := nonDigit.ReplaceAllString(raw, "")
	if strings.HasPrefix(clean, "0") {
		clean = "234" + clean[1:]
	} else if !strings.HasPrefix(clean, "234") {
		clean = "234" + clean
	}
	return "+" + clean
}

// IsValidNigerianMobile reports whether normalized is a canonical Nigerian
// mobile number. It expects Normalize output; raw input with separators
// will not match.
func IsValidNigerianMobile(normalized string) bool {
	return mobilePattern.MatchString(normalized)
}

// MaskForDisplay elides the middle four digits of a canonical number,
// keeping the trailing four visible, e.g. +2348012345678 -> +234801...5678.
func MaskForDisplay(normalized string) string {
	if len(normalized) < 8 {
		return normalized
	}
	tail := normalized[len(normalized)-4:]
	head := normalized[:len(normalized)-8]
	return head + "..." + tail
}
