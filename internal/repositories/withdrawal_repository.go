package repositories

import (
	"fmt"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// CreateWithdrawal inserts the request and debits the balance in one
// transaction. The user row is locked so concurrent withdrawals cannot both
// pass the balance check.
func (r *WithdrawalRepository) CreateWithdrawal(w *models.Withdrawal) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, w.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "user not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
		}

		if user.Balance < w.Amount {
			return errors.New(errors.ErrCodeInsufficientFunds,
				fmt.Sprintf("insufficient balance: have %.2f, need %.2f", user.Balance, w.Amount))
		}

		if err := tx.Model(&user).Update("balance", user.Balance-w.Amount).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to debit balance")
		}

		if err := tx.Create(w).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create withdrawal")
		}
		return nil
	})
}

func (r *WithdrawalRepository) GetWithdrawalByID(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	result := r.db.Preload("User").First(&w, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "withdrawal not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get withdrawal")
	}

	return &w, nil
}

// transition moves a pending withdrawal into a terminal state. Terminal
// states are absorbing.
func (r *WithdrawalRepository) transition(id uint, status string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "withdrawal not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get withdrawal")
		}

		if w.IsTerminal() {
			return errors.New(errors.ErrCodeInvalidState, "withdrawal already finalized")
		}

		if err := tx.Model(&w).Update("status", status).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update withdrawal status")
		}
		w.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) CompleteWithdrawal(id uint) (*models.Withdrawal, error) {
	return r.transition(id, models.WithdrawalStatusCompleted)
}

// RejectWithdrawal finalizes the request without touching the balance. The
// debit from creation stays in place until an operator issues the
// compensating credit via RefundRejected.
func (r *WithdrawalRepository) RejectWithdrawal(id uint) (*models.Withdrawal, error) {
	return r.transition(id, models.WithdrawalStatusRejected)
}

// RefundRejected credits the withdrawal amount back to the user, once. Valid
// only on rejected, not-yet-refunded rows.
func (r *WithdrawalRepository) RefundRejected(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "withdrawal not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get withdrawal")
		}

		if !w.CanRefund() {
			return errors.New(errors.ErrCodeInvalidState, "withdrawal is not refundable")
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, w.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "user not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
		}

		if err := tx.Model(&user).Update("balance", user.Balance+w.Amount).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to credit balance")
		}

		if err := tx.Model(&w).Update("refunded", true).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to mark refund")
		}
		w.Refunded = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) GetPendingWithdrawals() ([]models.Withdrawal, error) {
	var ws []models.Withdrawal
	err := r.db.Preload("User").
		Where("status = ?", models.WithdrawalStatusPending).
		Order("created_at DESC").
		Find(&ws).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get pending withdrawals")
	}
	return ws, nil
}

func (r *WithdrawalRepository) GetUserWithdrawals(userID uint, limit int) ([]models.Withdrawal, error) {
	var ws []models.Withdrawal
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ws).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get withdrawals")
	}
	return ws, nil
}

// PaidOut returns count and sum of completed withdrawals.
func (r *WithdrawalRepository) PaidOut() (int64, float64, error) {
	var count int64
	var total float64
	if err := r.db.Model(&models.Withdrawal{}).
		Where("status = ?", models.WithdrawalStatusCompleted).
		Count(&count).Error; err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count withdrawals")
	}
	if err := r.db.Model(&models.Withdrawal{}).
		Where("status = ?", models.WithdrawalStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to sum withdrawals")
	}
	return count, total, nil
}
