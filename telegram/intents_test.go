package telegram

import (
	"testing"

	"github.com/koptenko/caseshop_bot/internal/models"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data string
		want Callback
	}{
		{"shop", Callback{Intent: IntentShop}},
		{"vpn", Callback{Intent: IntentVPN}},
		{"reviews", Callback{Intent: IntentReviews}},
		{"admin_stats", Callback{Intent: IntentAdminStats}},
		{"admin_orders", Callback{Intent: IntentAdminOrders}},
		{"admin_withdrawals", Callback{Intent: IntentAdminWithdrawals}},
		{"admin_promos", Callback{Intent: IntentAdminPromos}},

		{"case_3", Callback{Intent: IntentCaseDetail, ProductType: models.ProductTypeCase, ID: 3}},
		{"plan_2", Callback{Intent: IntentPlanDetail, ProductType: models.ProductTypePlan, ID: 2}},
		{"paid_17", Callback{Intent: IntentPaid, ID: 17}},
		{"open_44", Callback{Intent: IntentOpenCase, ID: 44}},
		{"sell_44", Callback{Intent: IntentSellItem, ID: 44}},
		{"rate_5", Callback{Intent: IntentRate, ID: 5}},
		{"approve_order_9", Callback{Intent: IntentApproveOrder, ID: 9}},
		{"reject_order_9", Callback{Intent: IntentRejectOrder, ID: 9}},
		{"approve_wd_12", Callback{Intent: IntentApproveWithdrawal, ID: 12}},
		{"reject_wd_12", Callback{Intent: IntentRejectWithdrawal, ID: 12}},
		{"refund_wd_12", Callback{Intent: IntentRefundWithdrawal, ID: 12}},

		{"buy_case_3_card", Callback{Intent: IntentBuy, ProductType: models.ProductTypeCase, ID: 3, Method: models.PaymentMethodCard}},
		{"buy_plan_1_stars", Callback{Intent: IntentBuy, ProductType: models.ProductTypePlan, ID: 1, Method: models.PaymentMethodStars}},
		{"promo_yes_case_3_card", Callback{Intent: IntentPromoYes, ProductType: models.ProductTypeCase, ID: 3, Method: models.PaymentMethodCard}},
		{"promo_no_case_3_stars", Callback{Intent: IntentPromoNo, ProductType: models.ProductTypeCase, ID: 3, Method: models.PaymentMethodStars}},

		{"", Callback{Intent: IntentUnknown}},
		{"garbage", Callback{Intent: IntentUnknown}},
		{"case_", Callback{Intent: IntentUnknown}},
		{"case_abc", Callback{Intent: IntentUnknown}},
		{"buy_case_3", Callback{Intent: IntentUnknown}},
		{"buy_skin_3_card", Callback{Intent: IntentUnknown}},
		{"buy_case_x_card", Callback{Intent: IntentUnknown}},
		{"buy_case_3_paypal", Callback{Intent: IntentUnknown}},
		{"promo_yes_case_3_card_extra", Callback{Intent: IntentUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			if got := ParseCallback(tt.data); got != tt.want {
				t.Errorf("ParseCallback(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}
