package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/koptenko/caseshop_bot/pkg/logger"
)

// HandleWithdrawStart begins the cash-out conversation.
func (m *Manager) HandleWithdrawStart(telegramID int64, session *UserSession, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	if user.Balance < m.Config.MinWithdrawal {
		bot.SendMessage(telegramID, fmt.Sprintf(
			"⚠️ Минимальная сумма вывода — %.0f GOLD. Ваш баланс: %.2f GOLD.",
			m.Config.MinWithdrawal, user.Balance), nil)
		return
	}

	session.Clear()
	session.State = StateWithdrawAmount
	bot.SendMessage(telegramID, fmt.Sprintf(
		"💸 Вывод GOLD в игру\n\nВаш баланс: %.2f GOLD\nВведите сумму вывода (от %.0f):",
		user.Balance, m.Config.MinWithdrawal), nil)
}

// HandleWithdrawInput advances the multi-step flow. photoID is non-empty
// only on the screenshot step.
func (m *Manager) HandleWithdrawInput(telegramID int64, text, photoID string, session *UserSession, bot BotInterface) {
	switch session.State {
	case StateWithdrawAmount:
		m.withdrawAmountStep(telegramID, text, session, bot)
	case StateWithdrawNickname:
		m.withdrawNicknameStep(telegramID, text, session, bot)
	case StateWithdrawSkinName:
		m.withdrawSkinNameStep(telegramID, text, session, bot)
	case StateWithdrawSkinPrice:
		m.withdrawSkinPriceStep(telegramID, text, session, bot)
	case StateWithdrawScreenshot:
		m.withdrawScreenshotStep(telegramID, photoID, session, bot)
	}
}

func (m *Manager) withdrawAmountStep(telegramID int64, text string, session *UserSession, bot BotInterface) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil || amount <= 0 {
		bot.SendMessage(telegramID, "⚠️ Введите сумму числом, например: 25", nil)
		return
	}
	if amount < m.Config.MinWithdrawal {
		bot.SendMessage(telegramID, fmt.Sprintf("⚠️ Минимальная сумма вывода — %.0f GOLD.", m.Config.MinWithdrawal), nil)
		return
	}

	session.Set(KeyAmount, strconv.FormatFloat(amount, 'f', 2, 64))
	session.State = StateWithdrawNickname
	bot.SendMessage(telegramID, "Введите ваш игровой ник:", nil)
}

func (m *Manager) withdrawNicknameStep(telegramID int64, text string, session *UserSession, bot BotInterface) {
	nickname := strings.TrimSpace(text)
	if nickname == "" {
		bot.SendMessage(telegramID, "⚠️ Ник не может быть пустым.", nil)
		return
	}

	session.Set(KeyNickname, nickname)
	session.State = StateWithdrawSkinName

	amount, _ := strconv.ParseFloat(session.Get(KeyAmount), 64)
	expected := m.Withdrawals.ExpectedSkinPrice(amount)
	bot.SendMessage(telegramID, fmt.Sprintf(
		"Выставьте на продажу любой скин за %.2f GOLD (комиссия игры %.0f%%) "+
			"и введите его название:",
		expected, m.Config.GameCommission*100), nil)
}

func (m *Manager) withdrawSkinNameStep(telegramID int64, text string, session *UserSession, bot BotInterface) {
	skinName := strings.TrimSpace(text)
	if skinName == "" {
		bot.SendMessage(telegramID, "⚠️ Название скина не может быть пустым.", nil)
		return
	}

	session.Set(KeySkinName, skinName)
	session.State = StateWithdrawSkinPrice
	bot.SendMessage(telegramID, "Введите цену, за которую выставлен скин:", nil)
}

func (m *Manager) withdrawSkinPriceStep(telegramID int64, text string, session *UserSession, bot BotInterface) {
	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil || price <= 0 {
		bot.SendMessage(telegramID, "⚠️ Введите цену числом, например: 24", nil)
		return
	}

	session.Set(KeySkinPrice, strconv.FormatFloat(price, 'f', 2, 64))
	session.State = StateWithdrawScreenshot
	bot.SendMessage(telegramID, "Пришлите скриншот выставленного скина:", nil)
}

func (m *Manager) withdrawScreenshotStep(telegramID int64, photoID string, session *UserSession, bot BotInterface) {
	if photoID == "" {
		bot.SendMessage(telegramID, "⚠️ Нужен именно скриншот (фото).", nil)
		return
	}

	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		session.Clear()
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	amount, _ := strconv.ParseFloat(session.Get(KeyAmount), 64)
	skinPrice, _ := strconv.ParseFloat(session.Get(KeySkinPrice), 64)
	nickname := session.Get(KeyNickname)
	skinName := session.Get(KeySkinName)
	session.Clear()

	w, err := m.Withdrawals.CreateWithdrawal(user.ID, amount, nickname, skinName, skinPrice, photoID)
	if err != nil {
		if appMsg := userFacingError(err); appMsg != "" {
			bot.SendMessage(telegramID, appMsg, nil)
		} else {
			logger.Error("Failed to create withdrawal", "user_id", user.ID, "error", err)
			bot.SendMessage(telegramID, MsgInternalError, nil)
		}
		return
	}

	bot.SendMessage(telegramID, fmt.Sprintf(
		"⏳ Заявка #%d на вывод %.2f GOLD принята.\n"+
			"GOLD списан с баланса и будет выплачен после проверки.", w.ID, w.Amount), nil)

	text := fmt.Sprintf(
		"🔔 Заявка на вывод #%d\n\n👤 %s (id%d)\n🎮 Ник: %s\n💰 Сумма: %.2f GOLD\n"+
			"🔫 Скин: %s за %.2f",
		w.ID, displayName(user), user.TelegramID, w.GameNickname, w.Amount, w.SkinName, w.SkinPrice)
	for _, adminID := range m.Config.AdminIDs {
		bot.SendMessage(adminID, text, WithdrawalReviewKeyboard(w.ID))
	}
}
