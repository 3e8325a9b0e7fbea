// Package strings provides small text helpers shared by adapters and logs
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty(in, def string) string {
	if std.TrimSpace(in) == "" {
		return def
	}
	return in
}

// TruncateUTF8 returns s cut to at most max bytes, backing up to a UTF-8
// boundary if needed and appending an ellipsis when truncated
func TruncateUTF8(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	i := max
	// back up to the start of a rune (0b10xxxxxx is a continuation byte)
	for i > 0 && (s[i]&0xC0) == 0x80 {
		i--
	}
	if i <= 0 {
		i = max
	}
	return s[:i] + "..."
}
