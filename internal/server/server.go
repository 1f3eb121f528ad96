// Package server exposes the HTTP surface: the Free-Kassa payment webhook
// and a health endpoint for the hosting platform.
package server

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/koptenko/caseshop_bot/internal/config"
	"github.com/koptenko/caseshop_bot/internal/middleware"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/notify"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/internal/security"
	"github.com/koptenko/caseshop_bot/internal/services"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

type Server struct {
	cfg      *config.Config
	orders   *services.OrderService
	users    *repositories.UserRepository
	notifier notify.Notifier
	limiter  *middleware.RateLimiter
}

func New(
	cfg *config.Config,
	orders *services.OrderService,
	users *repositories.UserRepository,
	notifier notify.Notifier,
	limiter *middleware.RateLimiter,
) *Server {
	return &Server{
		cfg:      cfg,
		orders:   orders,
		users:    users,
		notifier: notifier,
		limiter:  limiter,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.handleHealth)
	// Free-Kassa sends GET or POST depending on merchant settings.
	r.Get("/webhook/freekassa", s.handleFreeKassa)
	r.Post("/webhook/freekassa", s.handleFreeKassa)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleFreeKassa processes a payment notification. The gateway expects the
// literal body "YES" on success and retries otherwise. A replayed
// notification for an already-completed order is answered "YES" without a
// second delivery.
func (s *Server) handleFreeKassa(w http.ResponseWriter, r *http.Request) {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if !s.limiter.AllowIP(ip) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	merchantID := r.Form.Get("MERCHANT_ID")
	amountStr := r.Form.Get("AMOUNT")
	orderRef := r.Form.Get("MERCHANT_ORDER_ID")
	sign := r.Form.Get("SIGN")

	if merchantID != s.cfg.FKMerchantID {
		logger.Warn("Webhook with unknown merchant id", "merchant_id", merchantID)
		http.Error(w, "unknown merchant", http.StatusBadRequest)
		return
	}

	// The signature covers the amount string exactly as the gateway sent it.
	if !security.VerifyPaymentSignature(merchantID, amountStr, s.cfg.FKSecretKey, orderRef, sign) {
		logger.Warn("Webhook with invalid signature", "order_ref", orderRef)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	orderID, telegramID, err := ParseOrderRef(orderRef)
	if err != nil {
		http.Error(w, "invalid order reference", http.StatusBadRequest)
		return
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	user, err := s.users.GetUserByTelegramID(telegramID)
	if err != nil {
		logger.Error("Webhook for unknown user", "telegram_id", telegramID, "error", err)
		http.Error(w, "unknown user", http.StatusBadRequest)
		return
	}

	order, delivery, err := s.orders.ConfirmWebhookPayment(orderID, user.ID, amount)
	if err != nil {
		s.respondFulfillmentFailure(w, orderID, amount, err)
		return
	}

	logger.Info("Webhook payment confirmed",
		"order_id", order.ID, "telegram_id", telegramID, "amount", amount)

	s.notifier.NotifyUser(telegramID, deliveryMessage(delivery))
	s.notifier.NotifyAdmins(fmt.Sprintf("💰 Оплачен заказ #%d на %.2f₽ (Free-Kassa)", order.ID, amount))

	w.Write([]byte("YES"))
}

// respondFulfillmentFailure decides what a failed confirmation tells the
// gateway. Retrying cannot help a replayed notification, a wrong amount or
// an empty key pool, so those are acknowledged with "YES"; only transient
// failures get an error status and another delivery attempt.
func (s *Server) respondFulfillmentFailure(w http.ResponseWriter, orderID uint, amount float64, err error) {
	switch {
	case errors.HasCode(err, errors.ErrCodeInvalidState):
		// Duplicate notification for an already-processed order.
		w.Write([]byte("YES"))
	case errors.HasCode(err, errors.ErrCodeResourceExhausted):
		// The order stays pending; an admin refills the pool and approves
		// it manually.
		logger.Error("Webhook fulfillment left order pending", "order_id", orderID, "error", err)
		s.notifier.NotifyAdmins(fmt.Sprintf(
			"🚨 Нет ключей для заказа #%d! Оплата получена, пополните пул и подтвердите заказ вручную.", orderID))
		w.Write([]byte("YES"))
	case errors.HasCode(err, errors.ErrCodeValidationFailed):
		logger.Warn("Webhook amount mismatch", "order_id", orderID, "amount", amount, "error", err)
		w.Write([]byte("YES"))
	default:
		logger.Error("Webhook payment confirmation failed", "order_id", orderID, "error", err)
		http.Error(w, "confirmation failed", http.StatusBadRequest)
	}
}

func deliveryMessage(d *services.Delivery) string {
	if d.ProductType == models.ProductTypePlan {
		return fmt.Sprintf("✅ Оплата получена!\n\n%s\n\n🔑 Ваш ключ:\n%s\n\nСпасибо за покупку!", d.PlanName, d.LicenseKey)
	}
	return fmt.Sprintf("✅ Оплата получена!\n\n%s добавлен в ваш инвентарь. Откройте его в разделе «Инвентарь».", d.CaseName)
}
