package models

import "testing"

func TestOrderStateGuards(t *testing.T) {
	tests := []struct {
		status      string
		terminal    bool
		canMarkPaid bool
		canComplete bool
		canReject   bool
	}{
		{OrderStatusPending, false, true, true, true},
		{OrderStatusWaitingConfirmation, false, false, true, true},
		{OrderStatusCompleted, true, false, false, false},
		{OrderStatusRejected, true, false, false, false},
	}

	for _, tt := range tests {
		o := &Order{Status: tt.status}
		if got := o.IsTerminal(); got != tt.terminal {
			t.Errorf("status %s: IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
		}
		if got := o.CanMarkPaid(); got != tt.canMarkPaid {
			t.Errorf("status %s: CanMarkPaid() = %v, want %v", tt.status, got, tt.canMarkPaid)
		}
		if got := o.CanComplete(); got != tt.canComplete {
			t.Errorf("status %s: CanComplete() = %v, want %v", tt.status, got, tt.canComplete)
		}
		if got := o.CanReject(); got != tt.canReject {
			t.Errorf("status %s: CanReject() = %v, want %v", tt.status, got, tt.canReject)
		}
	}
}
