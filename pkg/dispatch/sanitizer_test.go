package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeToken_SizeLimit(t *testing.T) {
	limit := DefaultMaxTokenSize

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeToken(strings.Repeat("a", tt.size))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTokenTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeToken_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxTokenSize, "8")

	_, err := SanitizeToken("123456789")
	assert.ErrorIs(t, err, ErrTokenTooLarge)

	t.Setenv(EnvMaxTokenSize, "not-a-number")
	_, err = SanitizeToken("123456789")
	assert.NoError(t, err)
}

func TestSanitizeToken_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Hello World", "Hello World"},
		{"Safe Controls", "Line1\nLine2\tTabbed", "Line1\nLine2\tTabbed"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"}, // ESC removed
		{"Null Byte", "Null\x00Byte", "NullByte"},
		{"Bell", "Ding\x07", "Ding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeToken(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeToken_InvalidUTF8(t *testing.T) {
	_, err := SanitizeToken("bad\xffbyte")
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, err = SanitizeTokens([]string{"ok", "bad\xff"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token 1")
}
