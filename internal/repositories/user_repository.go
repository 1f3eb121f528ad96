package repositories

import (
	"fmt"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertUser creates the user on first contact and refreshes the display
// fields on subsequent ones.
func (r *UserRepository) UpsertUser(telegramID int64, username, fullName string) (*models.User, error) {
	var user models.User
	err := r.db.Where("telegram_id = ?", telegramID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			TelegramID: telegramID,
			Username:   username,
			FullName:   fullName,
		}
		if err := r.db.Create(&user).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create user")
		}
		return &user, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
	}

	if user.Username != username || user.FullName != fullName {
		updates := map[string]interface{}{"username": username, "full_name": fullName}
		if err := r.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update user")
		}
	}

	return &user, nil
}

func (r *UserRepository) GetUserByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	result := r.db.Where("telegram_id = ?", telegramID).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// AdjustBalance applies a signed GOLD delta under a row lock. A delta that
// would drive the balance negative is rejected without mutation.
func (r *UserRepository) AdjustBalance(userID uint, delta float64) (float64, error) {
	var newBalance float64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "user not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
		}

		newBalance = user.Balance + delta
		if newBalance < 0 {
			return errors.New(errors.ErrCodeInsufficientFunds,
				fmt.Sprintf("insufficient balance: have %.2f, need %.2f", user.Balance, -delta))
		}

		if err := tx.Model(&user).Update("balance", newBalance).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update balance")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *UserRepository) GetBalance(userID uint) (float64, error) {
	var user models.User
	result := r.db.Select("balance").First(&user, userID)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get balance")
	}

	return user.Balance, nil
}

func (r *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count users")
	}
	return count, nil
}
