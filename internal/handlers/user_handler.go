package handlers

import (
	"fmt"
	"strings"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

const MsgInternalError = "⚠️ Что-то пошло не так. Попробуйте ещё раз позже."

// HandleStart registers the user on first contact and shows the main menu.
func (m *Manager) HandleStart(telegramID int64, username, fullName string, bot BotInterface) {
	user, err := m.UserRepo.UpsertUser(telegramID, username, fullName)
	if err != nil {
		logger.Error("Failed to upsert user", "telegram_id", telegramID, "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}

	text := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это магазин кейсов: покупай кейсы, открывай их и получай скины, "+
			"продавай скины за GOLD и выводи GOLD в игру.\n\n"+
			"💰 Твой баланс: %.2f GOLD",
		displayName(user), user.Balance,
	)
	bot.SendMessage(telegramID, text, nil)
	bot.SendMainMenu(telegramID, m.Config.IsAdmin(telegramID))
}

// HandleProfile shows balance, inventory summary and recent withdrawals.
func (m *Manager) HandleProfile(telegramID int64, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	entries, err := m.Reward.GetInventory(user.ID)
	if err != nil {
		logger.Error("Failed to load inventory", "user_id", user.ID, "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}

	var cases, items int
	for _, e := range entries {
		if e.IsCase() {
			cases++
		} else {
			items++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 Профиль %s\n\n", displayName(user))
	fmt.Fprintf(&sb, "💰 Баланс: %.2f GOLD\n", user.Balance)
	fmt.Fprintf(&sb, "📦 Кейсов: %d\n", cases)
	fmt.Fprintf(&sb, "🎒 Предметов: %d\n", items)

	withdrawals, err := m.Withdrawals.UserHistory(user.ID, 5)
	if err == nil && len(withdrawals) > 0 {
		sb.WriteString("\n💸 Последние выводы:\n")
		for _, w := range withdrawals {
			fmt.Fprintf(&sb, "• %.2f GOLD — %s\n", w.Amount, withdrawalStatusLabel(&w))
		}
	}

	bot.SendMessage(telegramID, sb.String(), nil)
}

func (m *Manager) HandleHelp(telegramID int64, bot BotInterface) {
	text := "ℹ️ Как это работает:\n\n" +
		"1. Купите кейс в магазине (карта или Telegram Stars).\n" +
		"2. После подтверждения оплаты кейс появится в инвентаре.\n" +
		"3. Откройте кейс и получите случайный скин.\n" +
		"4. Продайте скин за GOLD или оставьте себе.\n" +
		"5. Выведите GOLD в игру через раздел «Вывод».\n\n" +
		fmt.Sprintf("Минимальная сумма вывода: %.0f GOLD.", m.Config.MinWithdrawal)
	bot.SendMessage(telegramID, text, nil)
}

func displayName(user *models.User) string {
	if user.FullName != "" {
		return user.FullName
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	return fmt.Sprintf("id%d", user.TelegramID)
}

func withdrawalStatusLabel(w *models.Withdrawal) string {
	switch w.Status {
	case models.WithdrawalStatusCompleted:
		return "выплачено ✅"
	case models.WithdrawalStatusRejected:
		if w.Refunded {
			return "отклонено, GOLD возвращён ↩️"
		}
		return "отклонено ❌"
	default:
		return "на проверке ⏳"
	}
}
