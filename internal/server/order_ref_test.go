package server

import "testing"

func TestOrderRefRoundTrip(t *testing.T) {
	ref := FormatOrderRef(42, 123456789)
	if ref != "Order-42-User-123456789" {
		t.Fatalf("FormatOrderRef = %q", ref)
	}

	orderID, telegramID, err := ParseOrderRef(ref)
	if err != nil {
		t.Fatalf("ParseOrderRef failed: %v", err)
	}
	if orderID != 42 || telegramID != 123456789 {
		t.Errorf("parsed (%d, %d), want (42, 123456789)", orderID, telegramID)
	}
}

func TestParseOrderRefRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"Order-42",
		"Order--User-1",
		"Order-42-User-",
		"order-42-user-1",
		"Order-42-User-1-extra",
		"Order-x-User-1",
		"Order-42-User-abc",
	}

	for _, ref := range bad {
		if _, _, err := ParseOrderRef(ref); err == nil {
			t.Errorf("ParseOrderRef(%q) should fail", ref)
		}
	}
}
