package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main menu button labels
const (
	BtnShop      = "🎁 Магазин"
	BtnVPN       = "🔐 VPN"
	BtnInventory = "🎒 Инвентарь"
	BtnProfile   = "👤 Профиль"
	BtnWithdraw  = "💸 Вывод"
	BtnReview    = "⭐ Отзыв"
	BtnHelp      = "ℹ️ Помощь"
	BtnAdmin     = "⚙️ Админ-панель"
)

// MainMenuKeyboard builds the persistent reply keyboard. Admins get an
// extra row.
func MainMenuKeyboard(isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnShop),
			tgbotapi.NewKeyboardButton(BtnVPN),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnInventory),
			tgbotapi.NewKeyboardButton(BtnProfile),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnWithdraw),
			tgbotapi.NewKeyboardButton(BtnReview),
			tgbotapi.NewKeyboardButton(BtnHelp),
		),
	}

	if isAdmin {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnAdmin),
		))
	}

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}
