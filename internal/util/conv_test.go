package util

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Equal(t, uint(0), MustParseUint("not-a-number"))
	assert.Equal(t, uint(0), MustParseUint("-3"))
}

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than cap", "hello", 10, "hello"},
		{"exactly at cap", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"zero cap", "hello", 0, ""},
		// "café" is 5 bytes; cutting at 4 would land inside the é.
		{"multi-byte boundary", "café", 4, "caf"},
		{"multi-byte kept whole", "café", 5, "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateUTF8(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTruncateUTF8NeverSplitsRunes(t *testing.T) {
	s := strings.Repeat("ñ", 100) // 200 bytes
	for max := 0; max <= 200; max++ {
		got := TruncateUTF8(s, max)
		assert.True(t, utf8.ValidString(got), "max=%d", max)
		assert.LessOrEqual(t, len(got), max, "max=%d", max)
	}
}
