package repositories

import (
	stderrors "errors"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

func (r *PromoRepository) CreatePromoCode(promo *models.PromoCode) error {
	if err := r.db.Create(promo).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New(errors.ErrCodeValidationFailed, "promo code already exists")
		}
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create promo code")
	}
	return nil
}

// GetByCode looks up a code by its normalized (uppercased) form, active or
// not.
func (r *PromoRepository) GetByCode(code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	result := r.db.Where("code = ?", models.NormalizePromoCode(code)).First(&promo)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "promo code not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get promo code")
	}

	return &promo, nil
}

func (r *PromoRepository) ListPromoCodes() ([]models.PromoCode, error) {
	var promos []models.PromoCode
	err := r.db.Preload("Redemptions").
		Order("active DESC, code ASC").
		Find(&promos).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list promo codes")
	}
	return promos, nil
}

// SetActive flips the active flag. The discount itself never changes.
func (r *PromoRepository) SetActive(code string, active bool) error {
	result := r.db.Model(&models.PromoCode{}).
		Where("code = ?", models.NormalizePromoCode(code)).
		Update("active", active)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to toggle promo code")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "promo code not found")
	}
	return nil
}

func (r *PromoRepository) DeletePromoCode(code string) error {
	result := r.db.Where("code = ?", models.NormalizePromoCode(code)).Delete(&models.PromoCode{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete promo code")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "promo code not found")
	}
	return nil
}

// HasRedeemedAny implements the global one-promo-per-user rule: true if the
// user appears in the redeemer set of any code.
func (r *PromoRepository) HasRedeemedAny(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PromoRedemption{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check redemptions")
	}
	return count > 0, nil
}

// Redeem appends the user to the code's redeemer set exactly once.
// The global rule is re-checked inside the transaction, with the promo row
// locked; the unique index on user_id is the backstop should two redeems
// race past the check anyway.
func (r *PromoRepository) Redeem(promoCodeID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var promo models.PromoCode
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&promo, promoCodeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "promo code not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get promo code")
		}

		if !promo.Active {
			return errors.New(errors.ErrCodeValidationFailed, "promo code is inactive")
		}

		var count int64
		if err := tx.Model(&models.PromoRedemption{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check redemptions")
		}
		if count > 0 {
			return errors.New(errors.ErrCodeAlreadyConsumed, "user already redeemed a promo code")
		}

		redemption := &models.PromoRedemption{
			PromoCodeID: promoCodeID,
			UserID:      userID,
		}
		if err := tx.Create(redemption).Error; err != nil {
			if stderrors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New(errors.ErrCodeAlreadyConsumed, "user already redeemed a promo code")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to record redemption")
		}
		return nil
	})
}
