package dispatch

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxTokenSize is 4KB (conservative default)
	DefaultMaxTokenSize = 4096
	// EnvMaxTokenSize is the environment variable to override the default
	EnvMaxTokenSize = "ARGOT_MAX_TOKEN_SIZE"
)

var (
	ErrTokenTooLarge = errors.New("token exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("token contains invalid UTF-8 sequences")
)

// SanitizeToken cleans one raw token by enforcing the size limit,
// validating UTF-8, and stripping control characters.
func SanitizeToken(token string) (string, error) {
	// 1. Enforce Size Limit
	limit := maxTokenSize()
	if len(token) > limit {
		// Reject rather than truncate; a truncated token could still pass a check.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTokenTooLarge, len(token), limit)
	}

	// 2. Validate UTF-8
	if !utf8.ValidString(token) {
		return "", ErrInvalidUTF8
	}

	// 3. Strip Control Characters
	// Newline, tab and carriage return survive; ESC, NULL, BEL and friends do not.
	clean := true
	for _, r := range token {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return token, nil
	}

	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// SanitizeTokens applies SanitizeToken to every token, failing on the first bad one.
func SanitizeTokens(tokens []string) ([]string, error) {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		clean, err := SanitizeToken(t)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		out[i] = clean
	}
	return out, nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxTokenSize() int {
	if val := os.Getenv(EnvMaxTokenSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxTokenSize
}
