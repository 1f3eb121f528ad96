package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

const MsgNotAdmin = "⛔ Команда доступна только администраторам."

// HandleAdminPanel shows the admin menu.
func (m *Manager) HandleAdminPanel(telegramID int64, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}
	bot.SendMessage(telegramID, "⚙️ Админ-панель", AdminKeyboard())
}

// HandleStats renders the dashboard snapshot.
func (m *Manager) HandleStats(telegramID int64, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	stats, err := m.Stats.Collect()
	if err != nil {
		logger.Error("Failed to collect stats", "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика\n\n")
	fmt.Fprintf(&sb, "👥 Пользователей: %d\n", stats.Users)
	fmt.Fprintf(&sb, "📦 Оплаченных заказов: %d\n", stats.CompletedOrders)
	fmt.Fprintf(&sb, "💵 Выручка: %.2f₽\n", stats.Revenue)
	fmt.Fprintf(&sb, "💸 Выплат: %d на %.2f GOLD\n", stats.WithdrawalsPaid, stats.GoldPaidOut)

	if len(stats.CaseSales) > 0 {
		sb.WriteString("\nПродажи кейсов:\n")
		for _, c := range catalog.Cases() {
			if n := stats.CaseSales[c.ID]; n > 0 {
				fmt.Fprintf(&sb, "• %s — %d\n", c.Name, n)
			}
		}
	}
	if len(stats.PlanSales) > 0 {
		sb.WriteString("\nПродажи VPN:\n")
		for _, p := range catalog.Plans() {
			if n := stats.PlanSales[p.ID]; n > 0 {
				fmt.Fprintf(&sb, "• %s — %d\n", p.Name, n)
			}
		}
	}
	sb.WriteString("\n🔑 Остаток ключей:\n")
	for _, p := range catalog.Plans() {
		fmt.Fprintf(&sb, "• %s — %d\n", p.Name, stats.KeysRemaining[p.ID])
	}

	bot.SendMessage(telegramID, sb.String(), nil)
}

// HandlePendingOrders lists orders awaiting confirmation, each with its own
// approve/reject buttons.
func (m *Manager) HandlePendingOrders(telegramID int64, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	orders, err := m.Orders.Pending()
	if err != nil {
		logger.Error("Failed to list pending orders", "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}
	if len(orders) == 0 {
		bot.SendMessage(telegramID, "📦 Нет заказов на проверке.", nil)
		return
	}

	for _, o := range orders {
		title, _ := orderTitle(&o)
		text := fmt.Sprintf("Заказ #%d\n%s\n💵 %.2f₽\n👤 %s (id%d)",
			o.ID, title, o.Amount, displayName(&o.User), o.User.TelegramID)
		if o.PromoCode != "" {
			text += fmt.Sprintf("\n🎟 Промокод: %s", o.PromoCode)
		}
		bot.SendMessage(telegramID, text, OrderReviewKeyboard(o.ID))
	}
}

// HandleApproveOrder confirms payment and delivers the product.
func (m *Manager) HandleApproveOrder(telegramID int64, orderID uint, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	order, delivery, err := m.Orders.Approve(orderID)
	if err != nil {
		bot.SendMessage(telegramID, fmt.Sprintf("⚠️ Заказ #%d: %v", orderID, err), nil)
		return
	}

	bot.SendMessage(telegramID, fmt.Sprintf("✅ Заказ #%d подтверждён и выдан.", order.ID), nil)
	if buyer, err := m.UserRepo.GetUserByID(order.UserID); err == nil {
		m.Notifier.NotifyUser(buyer.TelegramID, DeliveryMessage(delivery))
	}
}

// HandleRejectOrder finalizes the order without delivery.
func (m *Manager) HandleRejectOrder(telegramID int64, orderID uint, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	order, err := m.Orders.Reject(orderID)
	if err != nil {
		bot.SendMessage(telegramID, fmt.Sprintf("⚠️ Заказ #%d: %v", orderID, err), nil)
		return
	}

	bot.SendMessage(telegramID, fmt.Sprintf("❌ Заказ #%d отклонён.", order.ID), nil)
	if buyer, err := m.UserRepo.GetUserByID(order.UserID); err == nil {
		m.Notifier.NotifyUser(buyer.TelegramID,
			fmt.Sprintf("❌ Оплата заказа #%d не подтвердилась. Если вы платили, напишите в поддержку.", order.ID))
	}
}

// HandlePendingWithdrawals lists withdrawal requests awaiting review.
func (m *Manager) HandlePendingWithdrawals(telegramID int64, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	ws, err := m.Withdrawals.Pending()
	if err != nil {
		logger.Error("Failed to list pending withdrawals", "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}
	if len(ws) == 0 {
		bot.SendMessage(telegramID, "💸 Нет заявок на вывод.", nil)
		return
	}

	for _, w := range ws {
		text := fmt.Sprintf("Заявка #%d\n👤 %s (id%d)\n🎮 Ник: %s\n💰 %.2f GOLD\n🔫 Скин: %s за %.2f",
			w.ID, displayName(&w.User), w.User.TelegramID, w.GameNickname, w.Amount, w.SkinName, w.SkinPrice)
		bot.SendMessage(telegramID, text, WithdrawalReviewKeyboard(w.ID))
	}
}

// HandleApproveWithdrawal marks the request paid out.
func (m *Manager) HandleApproveWithdrawal(telegramID int64, id uint, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	w, err := m.Withdrawals.Approve(id)
	if err != nil {
		bot.SendMessage(telegramID, fmt.Sprintf("⚠️ Заявка #%d: %v", id, err), nil)
		return
	}

	bot.SendMessage(telegramID, fmt.Sprintf("✅ Заявка #%d выплачена.", w.ID), nil)
	if owner, err := m.UserRepo.GetUserByID(w.UserID); err == nil {
		m.Notifier.NotifyUser(owner.TelegramID,
			fmt.Sprintf("✅ Вывод %.2f GOLD выполнен! Скин выкуплен, проверьте игру.", w.Amount))
	}
}

// HandleRejectWithdrawal finalizes the request. The held GOLD is returned
// only through the explicit refund button.
func (m *Manager) HandleRejectWithdrawal(telegramID int64, id uint, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	w, err := m.Withdrawals.Reject(id)
	if err != nil {
		bot.SendMessage(telegramID, fmt.Sprintf("⚠️ Заявка #%d: %v", id, err), nil)
		return
	}

	bot.SendMessage(telegramID, fmt.Sprintf("❌ Заявка #%d отклонена.", w.ID), RefundKeyboard(w.ID))
	if owner, err := m.UserRepo.GetUserByID(w.UserID); err == nil {
		m.Notifier.NotifyUser(owner.TelegramID,
			fmt.Sprintf("❌ Заявка на вывод %.2f GOLD отклонена. Свяжитесь с поддержкой.", w.Amount))
	}
}

// HandleRefundWithdrawal issues the compensating credit for a rejected
// request.
func (m *Manager) HandleRefundWithdrawal(telegramID int64, id uint, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	w, err := m.Withdrawals.Refund(id)
	if err != nil {
		bot.SendMessage(telegramID, fmt.Sprintf("⚠️ Заявка #%d: %v", id, err), nil)
		return
	}

	bot.SendMessage(telegramID, fmt.Sprintf("↩️ GOLD по заявке #%d возвращён.", w.ID), nil)
	if owner, err := m.UserRepo.GetUserByID(w.UserID); err == nil {
		m.Notifier.NotifyUser(owner.TelegramID,
			fmt.Sprintf("↩️ %.2f GOLD возвращены на ваш баланс.", w.Amount))
	}
}

// HandlePromoList shows all codes with their redemption counts.
func (m *Manager) HandlePromoList(telegramID int64, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	promos, err := m.Promos.List()
	if err != nil {
		logger.Error("Failed to list promo codes", "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}
	if len(promos) == 0 {
		bot.SendMessage(telegramID,
			"🎟 Промокодов нет.\n\n/promo_create КОД [скидка]\n/promo_gen [скидка]", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("🎟 Промокоды:\n\n")
	for _, p := range promos {
		state := "🟢"
		if !p.Active {
			state = "🔴"
		}
		fmt.Fprintf(&sb, "%s %s — скидка %.0f%%, активаций: %d\n", state, p.Code, p.Discount*100, len(p.Redemptions))
	}
	sb.WriteString("\n/promo_create КОД [скидка]\n/promo_gen [скидка]\n/promo_toggle КОД\n/promo_del КОД")

	bot.SendMessage(telegramID, sb.String(), nil)
}

// HandlePromoCommand dispatches the /promo_* admin commands. args is the
// command argument string.
func (m *Manager) HandlePromoCommand(telegramID int64, command, args string, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	fields := strings.Fields(args)
	switch command {
	case "promo_create":
		if len(fields) == 0 {
			bot.SendMessage(telegramID, "Использование: /promo_create КОД [скидка 0-100]", nil)
			return
		}
		promo, err := m.Promos.CreateCode(fields[0], parseDiscount(fields, 1))
		if err != nil {
			bot.SendMessage(telegramID, fmt.Sprintf("⚠️ %v", err), nil)
			return
		}
		bot.SendMessage(telegramID, fmt.Sprintf("🎟 Создан промокод %s со скидкой %.0f%%", promo.Code, promo.Discount*100), nil)

	case "promo_gen":
		promo, err := m.Promos.GenerateCode(parseDiscount(fields, 0))
		if err != nil {
			bot.SendMessage(telegramID, fmt.Sprintf("⚠️ %v", err), nil)
			return
		}
		bot.SendMessage(telegramID, fmt.Sprintf("🎟 Сгенерирован промокод %s со скидкой %.0f%%", promo.Code, promo.Discount*100), nil)

	case "promo_toggle":
		if len(fields) == 0 {
			bot.SendMessage(telegramID, "Использование: /promo_toggle КОД", nil)
			return
		}
		code := models.NormalizePromoCode(fields[0])
		promo, err := m.Promos.Get(code)
		if err != nil {
			bot.SendMessage(telegramID, fmt.Sprintf("⚠️ %v", err), nil)
			return
		}
		active := !promo.Active
		if err := m.Promos.SetActive(code, active); err != nil {
			bot.SendMessage(telegramID, fmt.Sprintf("⚠️ %v", err), nil)
			return
		}
		bot.SendMessage(telegramID, fmt.Sprintf("🎟 Промокод %s: active=%v", code, active), nil)

	case "promo_del":
		if len(fields) == 0 {
			bot.SendMessage(telegramID, "Использование: /promo_del КОД", nil)
			return
		}
		if err := m.Promos.Delete(fields[0]); err != nil {
			bot.SendMessage(telegramID, fmt.Sprintf("⚠️ %v", err), nil)
			return
		}
		bot.SendMessage(telegramID, fmt.Sprintf("🗑 Промокод %s удалён.", models.NormalizePromoCode(fields[0])), nil)
	}
}

// HandleAddKey registers a license key: /addkey PLAN_ID KEY
func (m *Manager) HandleAddKey(telegramID int64, args string, bot BotInterface) {
	if !m.Config.IsAdmin(telegramID) {
		bot.SendMessage(telegramID, MsgNotAdmin, nil)
		return
	}

	fields := strings.Fields(args)
	if len(fields) != 2 {
		bot.SendMessage(telegramID, "Использование: /addkey PLAN_ID КЛЮЧ", nil)
		return
	}

	planID, err := strconv.Atoi(fields[0])
	if err != nil {
		bot.SendMessage(telegramID, "⚠️ PLAN_ID должен быть числом.", nil)
		return
	}
	if _, ok := catalog.GetPlan(planID); !ok {
		bot.SendMessage(telegramID, "⚠️ Такого тарифа нет.", nil)
		return
	}

	key := &models.LicenseKey{Key: fields[1], PlanID: planID}
	if err := m.KeyRepo.AddKey(key); err != nil {
		bot.SendMessage(telegramID, fmt.Sprintf("⚠️ %v", err), nil)
		return
	}
	bot.SendMessage(telegramID, fmt.Sprintf("🔑 Ключ добавлен для тарифа %d.", planID), nil)
}

// parseDiscount reads an optional percent argument (e.g. "25") as a
// fraction. Zero means the service default.
func parseDiscount(fields []string, idx int) float64 {
	if len(fields) <= idx {
		return 0
	}
	pct, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return 0
	}
	return pct / 100
}
