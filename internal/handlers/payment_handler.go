package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/security"
	"github.com/koptenko/caseshop_bot/internal/server"
	"github.com/koptenko/caseshop_bot/internal/services"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

const starsPayloadPrefix = "order_"

// sendPaymentInstructions routes a fresh order to its payment surface: a
// Stars invoice, or card requisites with an optional gateway link.
func (m *Manager) sendPaymentInstructions(telegramID int64, order *models.Order, bot BotInterface) {
	if order.PaymentMethod == models.PaymentMethodStars {
		m.sendStarsInvoice(telegramID, order, bot)
		return
	}
	m.sendCardInstructions(telegramID, order, bot)
}

func (m *Manager) sendStarsInvoice(telegramID int64, order *models.Order, bot BotInterface) {
	stars := m.Orders.StarsPrice(order.Amount)
	title, description := orderTitle(order)

	payload := fmt.Sprintf("%s%d", starsPayloadPrefix, order.ID)
	if err := bot.SendStarsInvoice(telegramID, title, description, payload, stars); err != nil {
		logger.Error("Failed to send stars invoice", "order_id", order.ID, "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
	}
}

func (m *Manager) sendCardInstructions(telegramID int64, order *models.Order, bot BotInterface) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧾 Заказ #%d\n", order.ID)
	fmt.Fprintf(&sb, "💵 К оплате: %.2f₽\n\n", order.Amount)
	fmt.Fprintf(&sb, "💳 Карта: %s\n", m.Config.CardNumber)
	if m.Config.CardHolder != "" {
		fmt.Fprintf(&sb, "👤 Получатель: %s\n", m.Config.CardHolder)
	}
	if m.Config.Bank != "" {
		fmt.Fprintf(&sb, "🏦 Банк: %s\n", m.Config.Bank)
	}

	if link := m.paymentLink(order, telegramID); link != "" {
		fmt.Fprintf(&sb, "\n🌐 Или оплатите онлайн:\n%s\n", link)
	}

	sb.WriteString("\nПосле перевода нажмите «Я оплатил».")
	bot.SendMessage(telegramID, sb.String(), PaidKeyboard(order.ID))
}

// paymentLink builds a Free-Kassa checkout URL, or "" when the gateway is
// not configured.
func (m *Manager) paymentLink(order *models.Order, telegramID int64) string {
	if m.Config.FKMerchantID == "" || m.Config.FKSecretKey == "" {
		return ""
	}

	amount := strconv.FormatFloat(order.Amount, 'f', 2, 64)
	ref := server.FormatOrderRef(order.ID, telegramID)
	sign := security.PaymentSignature(m.Config.FKMerchantID, amount, m.Config.FKSecretKey, ref)

	q := url.Values{}
	q.Set("m", m.Config.FKMerchantID)
	q.Set("oa", amount)
	q.Set("o", ref)
	q.Set("s", sign)
	q.Set("currency", "RUB")
	return "https://pay.freekassa.ru/?" + q.Encode()
}

// HandleMarkPaid moves the buyer's card order into the admin review queue
// and alerts the admins.
func (m *Manager) HandleMarkPaid(telegramID int64, orderID uint, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	order, err := m.Orders.MarkPaid(orderID, user.ID)
	if err != nil {
		if appMsg := userFacingError(err); appMsg != "" {
			bot.SendMessage(telegramID, appMsg, nil)
		} else {
			bot.SendMessage(telegramID, "⚠️ Заказ уже обработан или не найден.", nil)
		}
		return
	}

	bot.SendMessage(telegramID, "⏳ Заказ отправлен на проверку. Мы сообщим, когда оплата подтвердится.", nil)

	title, _ := orderTitle(order)
	text := fmt.Sprintf("🔔 Оплата на проверку\n\nЗаказ #%d\n%s\n💵 %.2f₽\n👤 %s (id%d)",
		order.ID, title, order.Amount, displayName(user), user.TelegramID)
	for _, adminID := range m.Config.AdminIDs {
		bot.SendMessage(adminID, text, OrderReviewKeyboard(order.ID))
	}
}

// HandleSuccessfulPayment fulfills an order paid with Telegram Stars. The
// payload carries the order ID set at invoice time.
func (m *Manager) HandleSuccessfulPayment(telegramID int64, payload string, bot BotInterface) {
	if !strings.HasPrefix(payload, starsPayloadPrefix) {
		logger.Warn("Successful payment with unknown payload", "payload", payload)
		return
	}
	orderID, err := strconv.ParseUint(strings.TrimPrefix(payload, starsPayloadPrefix), 10, 32)
	if err != nil {
		logger.Warn("Successful payment with malformed payload", "payload", payload)
		return
	}

	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		logger.Error("Successful payment from unknown user", "telegram_id", telegramID)
		return
	}

	order, delivery, err := m.Orders.ConfirmStarsPayment(uint(orderID), user.ID)
	if err != nil {
		logger.Error("Failed to fulfill stars payment",
			"order_id", orderID, "user_id", user.ID, "error", err)
		bot.SendMessage(telegramID, "⚠️ Оплата получена, но заказ не удалось выдать. Напишите в поддержку.", nil)
		m.Notifier.NotifyAdmins(fmt.Sprintf("⚠️ Stars-оплата заказа #%d не выдана: %v", orderID, err))
		return
	}

	bot.SendMessage(telegramID, DeliveryMessage(delivery), nil)
	m.Notifier.NotifyAdmins(fmt.Sprintf("⭐ Оплачен заказ #%d (Telegram Stars, %.2f₽)", order.ID, order.Amount))
}

// DeliveryMessage renders the buyer-facing confirmation for a fulfilled
// order.
func DeliveryMessage(d *services.Delivery) string {
	if d.ProductType == models.ProductTypePlan {
		return fmt.Sprintf("✅ Оплата подтверждена!\n\n%s\n\n🔑 Ваш ключ:\n%s\n\nСпасибо за покупку!",
			d.PlanName, d.LicenseKey)
	}
	return fmt.Sprintf("✅ Оплата подтверждена!\n\n%s добавлен в ваш инвентарь. Откройте его в разделе «Инвентарь».",
		d.CaseName)
}

func orderTitle(order *models.Order) (string, string) {
	if order.ProductType == models.ProductTypePlan {
		if p, ok := catalog.GetPlan(order.ProductID); ok {
			return p.Name, p.Description
		}
		return fmt.Sprintf("План #%d", order.ProductID), ""
	}
	if c, ok := catalog.GetCase(order.ProductID); ok {
		return c.Name, fmt.Sprintf("Кейс с выгодой до %.0f GOLD", c.GoldYield)
	}
	return fmt.Sprintf("Кейс #%d", order.ProductID), ""
}
