package telegram

import (
	"strconv"
	"strings"

	"github.com/koptenko/caseshop_bot/internal/models"
)

// Intent classifies callback-query data.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentShop
	IntentVPN
	IntentCaseDetail
	IntentPlanDetail
	IntentBuy
	IntentPromoYes
	IntentPromoNo
	IntentPaid
	IntentOpenCase
	IntentSellItem
	IntentRate
	IntentReviews
	IntentAdminStats
	IntentAdminOrders
	IntentAdminWithdrawals
	IntentAdminPromos
	IntentApproveOrder
	IntentRejectOrder
	IntentApproveWithdrawal
	IntentRejectWithdrawal
	IntentRefundWithdrawal
)

// Callback is the parsed form of a callback-query payload.
type Callback struct {
	Intent      Intent
	ProductType string
	ID          int64
	Method      string
}

// ParseCallback decodes the callback data written by the keyboard builders.
// Unknown or malformed payloads come back as IntentUnknown.
func ParseCallback(data string) Callback {
	switch data {
	case "shop":
		return Callback{Intent: IntentShop}
	case "vpn":
		return Callback{Intent: IntentVPN}
	case "reviews":
		return Callback{Intent: IntentReviews}
	case "admin_stats":
		return Callback{Intent: IntentAdminStats}
	case "admin_orders":
		return Callback{Intent: IntentAdminOrders}
	case "admin_withdrawals":
		return Callback{Intent: IntentAdminWithdrawals}
	case "admin_promos":
		return Callback{Intent: IntentAdminPromos}
	}

	if id, ok := suffixID(data, "case_"); ok {
		return Callback{Intent: IntentCaseDetail, ProductType: models.ProductTypeCase, ID: id}
	}
	if id, ok := suffixID(data, "plan_"); ok {
		return Callback{Intent: IntentPlanDetail, ProductType: models.ProductTypePlan, ID: id}
	}
	if id, ok := suffixID(data, "paid_"); ok {
		return Callback{Intent: IntentPaid, ID: id}
	}
	if id, ok := suffixID(data, "open_"); ok {
		return Callback{Intent: IntentOpenCase, ID: id}
	}
	if id, ok := suffixID(data, "sell_"); ok {
		return Callback{Intent: IntentSellItem, ID: id}
	}
	if id, ok := suffixID(data, "rate_"); ok {
		return Callback{Intent: IntentRate, ID: id}
	}
	if id, ok := suffixID(data, "approve_order_"); ok {
		return Callback{Intent: IntentApproveOrder, ID: id}
	}
	if id, ok := suffixID(data, "reject_order_"); ok {
		return Callback{Intent: IntentRejectOrder, ID: id}
	}
	if id, ok := suffixID(data, "approve_wd_"); ok {
		return Callback{Intent: IntentApproveWithdrawal, ID: id}
	}
	if id, ok := suffixID(data, "reject_wd_"); ok {
		return Callback{Intent: IntentRejectWithdrawal, ID: id}
	}
	if id, ok := suffixID(data, "refund_wd_"); ok {
		return Callback{Intent: IntentRefundWithdrawal, ID: id}
	}

	// buy_<ptype>_<id>_<method>
	if rest, ok := strings.CutPrefix(data, "buy_"); ok {
		return parseBuy(IntentBuy, rest)
	}
	// promo_yes_<ptype>_<id>_<method> / promo_no_<ptype>_<id>_<method>
	if rest, ok := strings.CutPrefix(data, "promo_yes_"); ok {
		return parseBuy(IntentPromoYes, rest)
	}
	if rest, ok := strings.CutPrefix(data, "promo_no_"); ok {
		return parseBuy(IntentPromoNo, rest)
	}

	return Callback{Intent: IntentUnknown}
}

func parseBuy(intent Intent, rest string) Callback {
	parts := strings.Split(rest, "_")
	if len(parts) != 3 {
		return Callback{Intent: IntentUnknown}
	}
	if parts[0] != models.ProductTypeCase && parts[0] != models.ProductTypePlan {
		return Callback{Intent: IntentUnknown}
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Callback{Intent: IntentUnknown}
	}
	if parts[2] != models.PaymentMethodCard && parts[2] != models.PaymentMethodStars {
		return Callback{Intent: IntentUnknown}
	}
	return Callback{Intent: intent, ProductType: parts[0], ID: id, Method: parts[2]}
}

func suffixID(data, prefix string) (int64, bool) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
