package services

import (
	"fmt"
	"math"

	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/pkg/errors"
)

type OrderService struct {
	orderRepo   *repositories.OrderRepository
	promos      *PromoService
	fulfillment *FulfillmentService

	starsToRub       float64
	minStarsPurchase int
	paymentTolerance float64
}

func NewOrderService(
	orderRepo *repositories.OrderRepository,
	promos *PromoService,
	fulfillment *FulfillmentService,
	starsToRub float64,
	minStarsPurchase int,
	paymentTolerance float64,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		promos:           promos,
		fulfillment:      fulfillment,
		starsToRub:       starsToRub,
		minStarsPurchase: minStarsPurchase,
		paymentTolerance: paymentTolerance,
	}
}

// CreateCaseOrder opens a pending order for a catalog case. A promo code, if
// given, is redeemed here: the code burns at order creation, not at payment,
// so an abandoned or rejected order still consumes it.
func (s *OrderService) CreateCaseOrder(userID uint, caseID int, paymentMethod, promoCode string) (*models.Order, error) {
	caseDef, ok := catalog.GetCase(caseID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "case not found")
	}
	if err := validPaymentMethod(paymentMethod); err != nil {
		return nil, err
	}

	amount := caseDef.Price
	appliedCode := ""
	if promoCode != "" {
		promo, err := s.promos.Redeem(userID, promoCode)
		if err != nil {
			return nil, err
		}
		amount = DiscountedPrice(amount, promo.Discount)
		appliedCode = promo.Code
	}

	order := &models.Order{
		UserID:        userID,
		ProductType:   models.ProductTypeCase,
		ProductID:     caseDef.ID,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		PromoCode:     appliedCode,
	}
	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreatePlanOrder opens a pending order for a VPN plan. Plans are not
// discountable.
func (s *OrderService) CreatePlanOrder(userID uint, planID int, paymentMethod string) (*models.Order, error) {
	plan, ok := catalog.GetPlan(planID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "plan not found")
	}
	if err := validPaymentMethod(paymentMethod); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		ProductType:   models.ProductTypePlan,
		ProductID:     plan.ID,
		Amount:        plan.Price,
		PaymentMethod: paymentMethod,
	}
	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkPaid moves the buyer's order into the admin-review queue after they
// report a card transfer. Only the order's owner may do this.
func (s *OrderService) MarkPaid(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, errors.New(errors.ErrCodeUnauthorized, "order belongs to another user")
	}

	if err := s.orderRepo.MarkWaitingConfirmation(orderID); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusWaitingConfirmation
	return order, nil
}

// Approve confirms payment and fulfills the order.
func (s *OrderService) Approve(orderID uint) (*models.Order, *Delivery, error) {
	return s.fulfillment.Fulfill(orderID)
}

// Reject finalizes the order without delivering anything. The burned promo
// code is not restored.
func (s *OrderService) Reject(orderID uint) (*models.Order, error) {
	return s.orderRepo.RejectOrder(orderID)
}

// ConfirmWebhookPayment fulfills an order on a verified gateway
// notification. The paid amount must match the order amount within the
// configured tolerance, and the order must belong to the user named in the
// payment reference.
func (s *OrderService) ConfirmWebhookPayment(orderID, userID uint, paidAmount float64) (*models.Order, *Delivery, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.UserID != userID {
		return nil, nil, errors.New(errors.ErrCodeUnauthorized, "payment reference does not match order owner")
	}
	if math.Abs(paidAmount-order.Amount) > s.paymentTolerance {
		return nil, nil, errors.New(errors.ErrCodeValidationFailed,
			fmt.Sprintf("paid amount %.2f does not match order amount %.2f", paidAmount, order.Amount))
	}

	return s.fulfillment.Fulfill(orderID)
}

// ConfirmStarsPayment fulfills an order paid through a Telegram Stars
// invoice. Telegram has already verified the charge, so only ownership is
// checked here.
func (s *OrderService) ConfirmStarsPayment(orderID, userID uint) (*models.Order, *Delivery, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.UserID != userID {
		return nil, nil, errors.New(errors.ErrCodeUnauthorized, "order belongs to another user")
	}

	return s.fulfillment.Fulfill(orderID)
}

func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	return s.orderRepo.GetOrderByID(orderID)
}

func (s *OrderService) Pending() ([]models.Order, error) {
	return s.orderRepo.GetPendingOrders()
}

// StarsPrice converts a ruble amount to Telegram Stars, rounding up and
// never below the gateway minimum.
func (s *OrderService) StarsPrice(rub float64) int {
	stars := int(math.Ceil(rub / s.starsToRub))
	if stars < s.minStarsPurchase {
		stars = s.minStarsPurchase
	}
	return stars
}

func validPaymentMethod(method string) error {
	switch method {
	case models.PaymentMethodCard, models.PaymentMethodStars:
		return nil
	default:
		return errors.New(errors.ErrCodeValidationFailed, "unknown payment method")
	}
}
