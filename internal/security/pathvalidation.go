// Package security validates filesystem paths derived from external input.
package security

import "strings"

// SanitizeFilename makes a safe filename component from an arbitrary string.
// Tag identifiers arrive from recording files and end up embedded in output
// file names (plots, exports), so anything outside ASCII letters, digits,
// dot, underscore or dash is replaced with an underscore. Repeated
// underscores collapse and the result is length-capped.
func SanitizeFilename(s string) string {
	if s == "" {
		return "unknown"
	}
	const maxLen = 128
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
