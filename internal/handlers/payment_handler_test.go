package handlers

import (
	"strings"
	"testing"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/services"
)

func TestDeliveryMessageForPlan(t *testing.T) {
	d := &services.Delivery{
		ProductType: models.ProductTypePlan,
		PlanName:    "VPN 30 дней",
		LicenseKey:  "VPN-KEY-001-30DAYS",
	}

	msg := DeliveryMessage(d)
	if !strings.Contains(msg, "VPN 30 дней") {
		t.Error("plan delivery should name the plan")
	}
	if !strings.Contains(msg, "VPN-KEY-001-30DAYS") {
		t.Error("plan delivery should contain the license key")
	}
}

func TestDeliveryMessageForCase(t *testing.T) {
	d := &services.Delivery{
		ProductType: models.ProductTypeCase,
		CaseName:    "Бронзовый кейс",
	}

	msg := DeliveryMessage(d)
	if !strings.Contains(msg, "Бронзовый кейс") {
		t.Error("case delivery should name the case")
	}
	if strings.Contains(msg, "ключ") {
		t.Error("case delivery must not mention a license key")
	}
}

func TestOrderTitleFallsBackOnUnknownProduct(t *testing.T) {
	title, _ := orderTitle(&models.Order{ProductType: models.ProductTypeCase, ProductID: 9999})
	if title == "" {
		t.Error("unknown case should still render a title")
	}

	title, _ = orderTitle(&models.Order{ProductType: models.ProductTypePlan, ProductID: 9999})
	if title == "" {
		t.Error("unknown plan should still render a title")
	}
}
