package services

import (
	"fmt"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/internal/security"
	"github.com/koptenko/caseshop_bot/pkg/errors"
)

type WithdrawalService struct {
	repo *repositories.WithdrawalRepository

	minWithdrawal float64
	commission    float64
}

func NewWithdrawalService(repo *repositories.WithdrawalRepository, minWithdrawal, commission float64) *WithdrawalService {
	return &WithdrawalService{
		repo:          repo,
		minWithdrawal: minWithdrawal,
		commission:    commission,
	}
}

// CreateWithdrawal validates the cash-out request and debits the balance.
// The user must have listed an in-game skin priced so that, after the game's
// commission, the payout equals the requested amount.
func (s *WithdrawalService) CreateWithdrawal(userID uint, amount float64, nickname, skinName string, skinPrice float64, screenshotID string) (*models.Withdrawal, error) {
	if amount < s.minWithdrawal {
		return nil, errors.New(errors.ErrCodeValidationFailed,
			fmt.Sprintf("minimum withdrawal is %.0f GOLD", s.minWithdrawal))
	}

	nickname = security.SanitizeString(nickname)
	if !security.ValidateNickname(nickname) {
		return nil, errors.New(errors.ErrCodeValidationFailed, "invalid game nickname")
	}

	skinName = security.SanitizeString(skinName)
	if skinName == "" {
		return nil, errors.New(errors.ErrCodeValidationFailed, "skin name is required")
	}

	expected := models.ExpectedSkinPrice(amount, s.commission)
	if !models.SkinPriceWithinTolerance(skinPrice, expected) {
		return nil, errors.New(errors.ErrCodeValidationFailed,
			fmt.Sprintf("skin price must be %.2f to receive %.2f GOLD after commission", expected, amount))
	}

	w := &models.Withdrawal{
		UserID:       userID,
		Amount:       amount,
		GameNickname: nickname,
		SkinName:     skinName,
		SkinPrice:    skinPrice,
		ScreenshotID: screenshotID,
		Status:       models.WithdrawalStatusPending,
	}
	if err := s.repo.CreateWithdrawal(w); err != nil {
		return nil, err
	}
	return w, nil
}

// ExpectedSkinPrice returns the resale price the user must set for the given
// payout.
func (s *WithdrawalService) ExpectedSkinPrice(amount float64) float64 {
	return models.ExpectedSkinPrice(amount, s.commission)
}

func (s *WithdrawalService) Approve(id uint) (*models.Withdrawal, error) {
	return s.repo.CompleteWithdrawal(id)
}

// Reject finalizes the request. The held amount stays debited until an
// operator calls Refund.
func (s *WithdrawalService) Reject(id uint) (*models.Withdrawal, error) {
	return s.repo.RejectWithdrawal(id)
}

// Refund issues the compensating credit for a rejected request, once.
func (s *WithdrawalService) Refund(id uint) (*models.Withdrawal, error) {
	return s.repo.RefundRejected(id)
}

func (s *WithdrawalService) Get(id uint) (*models.Withdrawal, error) {
	return s.repo.GetWithdrawalByID(id)
}

func (s *WithdrawalService) Pending() ([]models.Withdrawal, error) {
	return s.repo.GetPendingWithdrawals()
}

func (s *WithdrawalService) UserHistory(userID uint, limit int) ([]models.Withdrawal, error) {
	return s.repo.GetUserWithdrawals(userID, limit)
}
