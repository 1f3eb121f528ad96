package services

import (
	"testing"

	"github.com/koptenko/caseshop_bot/internal/models"
)

func TestStarsPrice(t *testing.T) {
	svc := NewOrderService(nil, nil, nil, 1.67, 10, 5.0)

	tests := []struct {
		rub  float64
		want int
	}{
		{19, 12},     // 19/1.67 = 11.38, rounded up
		{45, 27},     // 45/1.67 = 26.95
		{999, 599},   // 999/1.67 = 598.2
		{10, 10},     // 10/1.67 = 5.99, clamped to the gateway minimum
		{1, 10},      // clamped
		{2499, 1497}, // 2499/1.67 = 1496.4
	}

	for _, tt := range tests {
		if got := svc.StarsPrice(tt.rub); got != tt.want {
			t.Errorf("StarsPrice(%v) = %d, want %d", tt.rub, got, tt.want)
		}
	}
}

func TestValidPaymentMethod(t *testing.T) {
	if err := validPaymentMethod(models.PaymentMethodCard); err != nil {
		t.Errorf("card should be valid: %v", err)
	}
	if err := validPaymentMethod(models.PaymentMethodStars); err != nil {
		t.Errorf("stars should be valid: %v", err)
	}
	if err := validPaymentMethod("paypal"); err == nil {
		t.Error("unknown method should be rejected")
	}
}
