package handlers

import (
	"fmt"
	"strings"

	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

// HandleInventory lists the user's cases and items with action buttons.
func (m *Manager) HandleInventory(telegramID int64, bot BotInterface) {
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

	if len(entries) == 0 {
		bot.SendMessage(telegramID, "🎒 Инвентарь пуст. Загляните в магазин!", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("🎒 Ваш инвентарь:\n\n")
	for _, e := range entries {
		if e.IsCase() {
			fmt.Fprintf(&sb, "📦 %s (не открыт)\n", e.ItemName)
		} else {
			fmt.Fprintf(&sb, "%s %s — %.2f GOLD\n", catalog.RarityEmoji(e.ItemRarity), e.ItemName, e.ItemValue)
		}
	}

	bot.SendMessage(telegramID, sb.String(), InventoryKeyboard(entries))
}

// HandleOpenCase opens one case instance and announces the drop.
func (m *Manager) HandleOpenCase(telegramID int64, entryID uint, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	item, err := m.Reward.OpenCase(user.ID, entryID)
	if err != nil {
		if appMsg := userFacingError(err); appMsg != "" {
			bot.SendMessage(telegramID, appMsg, nil)
		} else {
			bot.SendMessage(telegramID, "⚠️ Кейс уже открыт или не найден.", nil)
		}
		return
	}

	text := fmt.Sprintf(
		"🎉 Кейс открыт!\n\n%s %s\nРедкость: %s\nЦенность: %.2f GOLD\n\n"+
			"Продайте предмет в инвентаре, чтобы получить GOLD.",
		catalog.RarityEmoji(item.ItemRarity), item.ItemName, item.ItemRarity, item.ItemValue,
	)
	bot.SendMessage(telegramID, text, nil)
}

// HandleSellItem sells one item for its GOLD value.
func (m *Manager) HandleSellItem(telegramID int64, entryID uint, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	balance, err := m.Reward.SellItem(user.ID, entryID)
	if err != nil {
		if appMsg := userFacingError(err); appMsg != "" {
			bot.SendMessage(telegramID, appMsg, nil)
		} else {
			bot.SendMessage(telegramID, "⚠️ Предмет уже продан или не найден.", nil)
		}
		return
	}

	bot.SendMessage(telegramID, fmt.Sprintf("💰 Продано! Баланс: %.2f GOLD", balance), nil)
}
