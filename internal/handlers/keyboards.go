package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/internal/models"
)

// ShopKeyboard lists the catalog cases, one per row.
func ShopKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range catalog.Cases() {
		label := fmt.Sprintf("%s — %.0f₽", c.Name, c.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("case_%d", c.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// CaseKeyboard offers the payment methods for one case.
func CaseKeyboard(caseID int, stars int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Оплата картой", fmt.Sprintf("buy_case_%d_card", caseID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("⭐ Оплата Stars (%d)", stars), fmt.Sprintf("buy_case_%d_stars", caseID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "shop"),
		),
	)
}

// PromoChoiceKeyboard asks whether the buyer wants to enter a promo code
// before the order is created.
func PromoChoiceKeyboard(productType string, productID int, method string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎟 Ввести промокод", fmt.Sprintf("promo_yes_%s_%d_%s", productType, productID, method)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ Продолжить без промокода", fmt.Sprintf("promo_no_%s_%d_%s", productType, productID, method)),
		),
	)
}

// PaidKeyboard is attached to card payment instructions.
func PaidKeyboard(orderID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Я оплатил", fmt.Sprintf("paid_%d", orderID)),
		),
	)
}

// PlansKeyboard lists the VPN plans.
func PlansKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range catalog.Plans() {
		label := fmt.Sprintf("%s — %.0f₽", p.Name, p.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("plan_%d", p.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// PlanKeyboard offers the payment methods for one plan.
func PlanKeyboard(planID int, stars int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Оплата картой", fmt.Sprintf("buy_plan_%d_card", planID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("⭐ Оплата Stars (%d)", stars), fmt.Sprintf("buy_plan_%d_stars", planID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "vpn"),
		),
	)
}

// InventoryKeyboard builds per-entry action buttons: open for cases, sell
// for items.
func InventoryKeyboard(entries []models.InventoryEntry) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, e := range entries {
		if e.IsCase() {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("📦 Открыть: %s", e.ItemName),
					fmt.Sprintf("open_%d", e.ID),
				),
			))
		} else {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("💰 Продать %s за %.2f GOLD", e.ItemName, e.ItemValue),
					fmt.Sprintf("sell_%d", e.ID),
				),
			))
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// OrderReviewKeyboard is attached to admin notifications about paid orders.
func OrderReviewKeyboard(orderID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", fmt.Sprintf("approve_order_%d", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", fmt.Sprintf("reject_order_%d", orderID)),
		),
	)
}

// WithdrawalReviewKeyboard is attached to admin notifications about
// withdrawal requests.
func WithdrawalReviewKeyboard(id uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Выплачено", fmt.Sprintf("approve_wd_%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", fmt.Sprintf("reject_wd_%d", id)),
		),
	)
}

// RefundKeyboard lets an admin return the held amount of a rejected
// withdrawal.
func RefundKeyboard(id uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Вернуть GOLD", fmt.Sprintf("refund_wd_%d", id)),
		),
	)
}

// RecentReviewsKeyboard opens the public review feed.
func RecentReviewsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Последние отзывы", "reviews"),
		),
	)
}

// RatingKeyboard offers the 1-5 star rating row.
func RatingKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for i := 1; i <= 5; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d⭐", i),
			fmt.Sprintf("rate_%d", i),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}

// AdminKeyboard is the admin panel menu.
func AdminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "admin_stats"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Заказы на проверке", "admin_orders"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Заявки на вывод", "admin_withdrawals"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎟 Промокоды", "admin_promos"),
		),
	)
}
