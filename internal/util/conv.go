package util

import (
	"strconv"
	"unicode/utf8"
)

// MustParseUint converts a path parameter to uint, returning 0 when it
// does not parse.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// TruncateUTF8 caps s at max bytes without splitting a multi-byte rune;
// the cut backs up to the nearest rune start.
func TruncateUTF8(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
