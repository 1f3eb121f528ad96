package models

import "testing"

func TestWithdrawalStateGuards(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		refunded  bool
		terminal  bool
		canRefund bool
	}{
		{"pending", WithdrawalStatusPending, false, false, false},
		{"completed", WithdrawalStatusCompleted, false, true, false},
		{"rejected not refunded", WithdrawalStatusRejected, false, true, true},
		{"rejected already refunded", WithdrawalStatusRejected, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Withdrawal{Status: tt.status, Refunded: tt.refunded}
			if got := w.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
			if got := w.CanRefund(); got != tt.canRefund {
				t.Errorf("CanRefund() = %v, want %v", got, tt.canRefund)
			}
		})
	}
}

func TestExpectedSkinPrice(t *testing.T) {
	tests := []struct {
		amount     float64
		commission float64
		want       float64
	}{
		{20, 0.20, 24},
		{100, 0.20, 120},
		{50, 0, 50},
		{33.5, 0.20, 40.2},
	}

	for _, tt := range tests {
		if got := ExpectedSkinPrice(tt.amount, tt.commission); got != tt.want {
			t.Errorf("ExpectedSkinPrice(%v, %v) = %v, want %v", tt.amount, tt.commission, got, tt.want)
		}
	}
}

func TestSkinPriceWithinTolerance(t *testing.T) {
	tests := []struct {
		name     string
		claimed  float64
		expected float64
		want     bool
	}{
		{"exact", 24, 24, true},
		{"just inside above", 24.9, 24, true},
		{"just inside below", 23.1, 24, true},
		{"on the boundary", 25, 24, true},
		{"outside above", 25.5, 24, false},
		{"outside below", 22.5, 24, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkinPriceWithinTolerance(tt.claimed, tt.expected); got != tt.want {
				t.Errorf("SkinPriceWithinTolerance(%v, %v) = %v, want %v", tt.claimed, tt.expected, got, tt.want)
			}
		})
	}
}
