package services

import (
	"fmt"
	"math"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"github.com/koptenko/caseshop_bot/pkg/utils"
)

const generatedCodeLength = 8

type PromoService struct {
	repo *repositories.PromoRepository
}

func NewPromoService(repo *repositories.PromoRepository) *PromoService {
	return &PromoService{repo: repo}
}

// CreateCode registers an admin-chosen code. Discount is a fraction in
// (0, 1); zero means use the default.
func (s *PromoService) CreateCode(code string, discount float64) (*models.PromoCode, error) {
	code = models.NormalizePromoCode(code)
	if !models.ValidPromoCode(code) {
		return nil, errors.New(errors.ErrCodeValidationFailed, "promo code must be at least 4 alphanumeric characters")
	}

	if discount == 0 {
		discount = models.DefaultPromoDiscount
	}
	if discount <= 0 || discount >= 1 {
		return nil, errors.New(errors.ErrCodeValidationFailed, "discount must be a fraction between 0 and 1")
	}

	promo := &models.PromoCode{
		Code:     code,
		Discount: discount,
		Active:   true,
	}
	if err := s.repo.CreatePromoCode(promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// GenerateCode creates a random code. Collisions with existing codes are
// retried a few times before giving up.
func (s *PromoService) GenerateCode(discount float64) (*models.PromoCode, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		code := utils.GeneratePromoCode(generatedCodeLength)
		if code == "" {
			return nil, errors.New(errors.ErrCodeInternalError, "failed to generate promo code")
		}
		promo, err := s.CreateCode(code, discount)
		if err == nil {
			return promo, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Validate checks a user-entered code without consuming it: the code must
// exist, be active, and the user must not have redeemed any code before.
func (s *PromoService) Validate(userID uint, code string) (*models.PromoCode, error) {
	promo, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !promo.Active {
		return nil, errors.New(errors.ErrCodeValidationFailed, "promo code is inactive")
	}

	redeemed, err := s.repo.HasRedeemedAny(userID)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return nil, errors.New(errors.ErrCodeAlreadyConsumed, "user already redeemed a promo code")
	}

	return promo, nil
}

// Redeem consumes the code for the user. Exactly-once across all codes.
func (s *PromoService) Redeem(userID uint, code string) (*models.PromoCode, error) {
	promo, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Redeem(promo.ID, userID); err != nil {
		return nil, err
	}
	return promo, nil
}

// Get looks a code up regardless of its active state.
func (s *PromoService) Get(code string) (*models.PromoCode, error) {
	return s.repo.GetByCode(code)
}

func (s *PromoService) HasRedeemedAny(userID uint) (bool, error) {
	return s.repo.HasRedeemedAny(userID)
}

func (s *PromoService) List() ([]models.PromoCode, error) {
	return s.repo.ListPromoCodes()
}

func (s *PromoService) SetActive(code string, active bool) error {
	return s.repo.SetActive(code, active)
}

func (s *PromoService) Delete(code string) error {
	return s.repo.DeletePromoCode(code)
}

// DiscountedPrice applies the discount fraction and rounds to kopecks.
func DiscountedPrice(price, discount float64) float64 {
	return math.Round(price*(1-discount)*100) / 100
}

// FormatDiscount renders a discount fraction as a percent label.
func FormatDiscount(discount float64) string {
	return fmt.Sprintf("%.0f%%", discount*100)
}
