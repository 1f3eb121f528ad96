package security

import (
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"trims", "  hello  ", "hello"},
		{"strips tags", "<script>alert(1)</script>nick", "nick"},
		{"strips bold", "<b>nick</b>", "nick"},
		{"null bytes", "ni\x00ck", "nick"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeStringCapsLength(t *testing.T) {
	long := strings.Repeat("a", 2000)
	if got := SanitizeString(long); len(got) != 1000 {
		t.Errorf("length = %d, want 1000", len(got))
	}
}

func TestValidateNickname(t *testing.T) {
	tests := []struct {
		nickname string
		want     bool
	}{
		{"ab", true},
		{"ProPlayer_99", true},
		{"a", false},
		{"", false},
		{strings.Repeat("x", 64), true},
		{strings.Repeat("x", 65), false},
	}

	for _, tt := range tests {
		if got := ValidateNickname(tt.nickname); got != tt.want {
			t.Errorf("ValidateNickname(%q) = %v, want %v", tt.nickname, got, tt.want)
		}
	}
}
