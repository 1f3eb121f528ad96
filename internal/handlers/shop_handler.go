package handlers

import (
	"fmt"
	"strings"

	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

// HandleShop shows the case catalog.
func (m *Manager) HandleShop(telegramID int64, bot BotInterface) {
	bot.SendMessage(telegramID, "🎁 Выберите кейс:", ShopKeyboard())
}

// HandleCaseDetail shows one case's contents and drop chances.
func (m *Manager) HandleCaseDetail(telegramID int64, caseID int, bot BotInterface) {
	c, ok := catalog.GetCase(caseID)
	if !ok {
		bot.SendMessage(telegramID, "Кейс не найден.", nil)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", c.Name)
	fmt.Fprintf(&sb, "💵 Цена: %.0f₽ / %d⭐\n", c.Price, c.Stars)
	fmt.Fprintf(&sb, "💰 Выгода: до %.0f GOLD\n\n", c.GoldYield)
	sb.WriteString("Содержимое:\n")
	for _, it := range c.Items {
		fmt.Fprintf(&sb, "%s %s — %.2f GOLD (%.1f%%)\n", it.Emoji, it.Name, it.Value, it.Chance)
	}

	bot.SendMessage(telegramID, sb.String(), CaseKeyboard(c.ID, c.Stars))
}

// HandleBuyRequest starts a purchase: before the order exists the buyer may
// attach a promo code. Only case orders are discountable.
func (m *Manager) HandleBuyRequest(telegramID int64, productType string, productID int, method string, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	if productType == models.ProductTypePlan {
		m.placeOrder(telegramID, user.ID, productType, productID, method, "", bot)
		return
	}

	redeemed, err := m.Promos.HasRedeemedAny(user.ID)
	if err != nil {
		logger.Error("Failed to check promo redemptions", "user_id", user.ID, "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}
	if redeemed {
		m.placeOrder(telegramID, user.ID, productType, productID, method, "", bot)
		return
	}

	bot.SendMessage(telegramID, "У вас есть промокод?", PromoChoiceKeyboard(productType, productID, method))
}

// HandlePromoPrompt puts the buyer into the promo-entry state.
func (m *Manager) HandlePromoPrompt(telegramID int64, productType string, productID int, method string, session *UserSession, bot BotInterface) {
	session.State = StateAwaitingPromo
	session.Set(KeyProductType, productType)
	session.Set(KeyProductID, fmt.Sprintf("%d", productID))
	session.Set(KeyPaymentMethod, method)
	bot.SendMessage(telegramID, "🎟 Введите промокод:", nil)
}

// HandlePromoInput consumes the typed promo code and places the order with
// the discount applied. An invalid code falls back to an order without one.
func (m *Manager) HandlePromoInput(telegramID int64, text string, session *UserSession, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		session.Clear()
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	productType := session.Get(KeyProductType)
	productID := atoiOrZero(session.Get(KeyProductID))
	method := session.Get(KeyPaymentMethod)
	session.Clear()

	code := models.NormalizePromoCode(text)
	if _, err := m.Promos.Validate(user.ID, code); err != nil {
		switch {
		case errors.HasCode(err, errors.ErrCodeAlreadyConsumed):
			bot.SendMessage(telegramID, "⚠️ Вы уже использовали промокод. Заказ оформлен без скидки.", nil)
		case errors.HasCode(err, errors.ErrCodeNotFound):
			bot.SendMessage(telegramID, "⚠️ Такого промокода нет. Заказ оформлен без скидки.", nil)
		default:
			bot.SendMessage(telegramID, "⚠️ Промокод не применён. Заказ оформлен без скидки.", nil)
		}
		code = ""
	}

	m.placeOrder(telegramID, user.ID, productType, productID, method, code, bot)
}

// HandleBuyWithoutPromo places the order directly.
func (m *Manager) HandleBuyWithoutPromo(telegramID int64, productType string, productID int, method string, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}
	m.placeOrder(telegramID, user.ID, productType, productID, method, "", bot)
}

func (m *Manager) placeOrder(telegramID int64, userID uint, productType string, productID int, method, promoCode string, bot BotInterface) {
	var (
		order *models.Order
		err   error
	)
	switch productType {
	case models.ProductTypePlan:
		order, err = m.Orders.CreatePlanOrder(userID, productID, method)
	default:
		order, err = m.Orders.CreateCaseOrder(userID, productID, method, promoCode)
	}
	if err != nil {
		logger.Error("Failed to create order",
			"user_id", userID, "product_type", productType, "product_id", productID, "error", err)
		if appMsg := userFacingError(err); appMsg != "" {
			bot.SendMessage(telegramID, appMsg, nil)
		} else {
			bot.SendMessage(telegramID, MsgInternalError, nil)
		}
		return
	}

	if promoCode != "" {
		bot.SendMessage(telegramID,
			fmt.Sprintf("🎟 Промокод %s применён! Цена со скидкой: %.2f₽", promoCode, order.Amount), nil)
	}

	m.sendPaymentInstructions(telegramID, order, bot)
}

func userFacingError(err error) string {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		return ""
	}
	switch appErr.Code {
	case errors.ErrCodeValidationFailed, errors.ErrCodeNotFound,
		errors.ErrCodeAlreadyConsumed, errors.ErrCodeInsufficientFunds:
		return "⚠️ " + appErr.Message
	default:
		return ""
	}
}

func atoiOrZero(s string) int {
	var n int
	fmt.Sscanf(s, "%d", &n)
	return n
}
