package security

import (
	"strings"
	"testing"
)

func TestPaymentSignature(t *testing.T) {
	// md5("12345:150.00:secret:Order-7-User-42")
	got := PaymentSignature("12345", "150.00", "secret", "Order-7-User-42")
	if len(got) != 32 {
		t.Fatalf("signature length = %d, want 32", len(got))
	}

	same := PaymentSignature("12345", "150.00", "secret", "Order-7-User-42")
	if got != same {
		t.Error("signature is not deterministic")
	}

	other := PaymentSignature("12345", "150.01", "secret", "Order-7-User-42")
	if got == other {
		t.Error("different amounts must produce different signatures")
	}
}

func TestVerifyPaymentSignature(t *testing.T) {
	sign := PaymentSignature("m1", "99.00", "s3cret", "Order-1-User-2")

	tests := []struct {
		name     string
		provided string
		want     bool
	}{
		{"exact", sign, true},
		{"uppercase", strings.ToUpper(sign), true},
		{"padded", "  " + sign + "  ", true},
		{"wrong", "deadbeefdeadbeefdeadbeefdeadbeef", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPaymentSignature("m1", "99.00", "s3cret", "Order-1-User-2", tt.provided); got != tt.want {
				t.Errorf("VerifyPaymentSignature(%q) = %v, want %v", tt.provided, got, tt.want)
			}
		})
	}

	if VerifyPaymentSignature("m1", "99.01", "s3cret", "Order-1-User-2", sign) {
		t.Error("signature must not verify against a different amount")
	}
}
