package handlers

import (
	"fmt"
	"strings"

	"github.com/koptenko/caseshop_bot/internal/catalog"
)

// HandleVPNShop shows the subscription plans.
func (m *Manager) HandleVPNShop(telegramID int64, bot BotInterface) {
	bot.SendMessage(telegramID, "🔐 VPN Premium — выберите тариф:", PlansKeyboard())
}

// HandlePlanDetail shows one plan.
func (m *Manager) HandlePlanDetail(telegramID int64, planID int, bot BotInterface) {
	p, ok := catalog.GetPlan(planID)
	if !ok {
		bot.SendMessage(telegramID, "Тариф не найден.", nil)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Name)
	fmt.Fprintf(&sb, "💵 Цена: %.0f₽\n", p.Price)
	fmt.Fprintf(&sb, "⏱ Срок: %s\n\n", p.Duration)
	sb.WriteString(p.Description)

	stars := m.Orders.StarsPrice(p.Price)
	bot.SendMessage(telegramID, sb.String(), PlanKeyboard(p.ID, stars))
}
