package security

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain tag id", "mn-2024-017", "mn-2024-017"},
		{"spaces and slashes", "tag 01/b", "tag_01_b"},
		{"path traversal", "../../etc/passwd", "etc_passwd"},
		{"empty", "", "unknown"},
		{"only bad characters", "///", "unknown"},
		{"collapses runs", "a!!!b", "a_b"},
		{"keeps dots and dashes", "dep.v2-final", "dep.v2-final"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_LengthCapped(t *testing.T) {
	long := strings.Repeat("a", 500)
	if got := SanitizeFilename(long); len(got) > 128 {
		t.Errorf("sanitized length = %d, want <= 128", len(got))
	}
}
