package utils

import (
	"strings"
	"testing"
)

func TestGeneratePromoCode(t *testing.T) {
	code := GeneratePromoCode(8)
	if len(code) != 8 {
		t.Fatalf("code length = %d, want 8", len(code))
	}
	for _, c := range code {
		if !strings.ContainsRune(promoCharset, c) {
			t.Errorf("unexpected character %q in code %q", c, code)
		}
	}
}

func TestGeneratePromoCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GeneratePromoCode(8)
		if seen[code] {
			t.Fatalf("duplicate code %q generated", code)
		}
		seen[code] = true
	}
}

func TestGeneratePromoCodeZeroLength(t *testing.T) {
	if code := GeneratePromoCode(0); code != "" {
		t.Errorf("zero-length code = %q, want empty", code)
	}
}
