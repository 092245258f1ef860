package util

import "strings"

// SplitAndTrim splits s by sep and drops empty elements.
func SplitAndTrim(s string, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}

	return result
}

// Truncate returns at most the first n runes of s.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n < 0 || len(runes) <= n {
		return s
	}

	return string(runes[:n])
}

// MaskSecret keeps the last four characters of a secret visible.
func MaskSecret(secret string) string {
	const visible = 4

	runes := []rune(secret)
	if len(runes) <= visible {
		return strings.Repeat("*", len(runes))
	}

	return strings.Repeat("*", len(runes)-visible) + string(runes[len(runes)-visible:])
}
