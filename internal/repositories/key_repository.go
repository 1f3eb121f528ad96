package repositories

import (
	stderrors "errors"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KeyRepository struct {
	db *gorm.DB
}

func NewKeyRepository(db *gorm.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

func (r *KeyRepository) AddKey(key *models.LicenseKey) error {
	if err := r.db.Create(key).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New(errors.ErrCodeValidationFailed, "license key already exists")
		}
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add license key")
	}
	return nil
}

// PopUnused draws one unused key for the plan without replacement, inside
// the caller's transaction. The SKIP LOCKED lock keeps two concurrent
// fulfillments from grabbing the same row. An empty pool is
// RESOURCE_EXHAUSTED: the order must stay pending for operator intervention.
func (r *KeyRepository) PopUnused(tx *gorm.DB, planID int, orderID uint) (string, error) {
	var key models.LicenseKey
	err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("plan_id = ? AND used = ?", planID, false).
		Order("id ASC").
		First(&key).Error
	if err == gorm.ErrRecordNotFound {
		return "", errors.New(errors.ErrCodeResourceExhausted, "no unused license keys for plan")
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to get license key")
	}

	updates := map[string]interface{}{"used": true, "order_id": orderID}
	if err := tx.Model(&key).Updates(updates).Error; err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to mark key used")
	}

	return key.Key, nil
}

// CountUnused returns remaining pool sizes keyed by plan id.
func (r *KeyRepository) CountUnused() (map[int]int64, error) {
	type row struct {
		PlanID int
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.LicenseKey{}).
		Select("plan_id, COUNT(*) as count").
		Where("used = ?", false).
		Group("plan_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count keys")
	}

	counts := make(map[int]int64, len(rows))
	for _, r := range rows {
		counts[r.PlanID] = r.Count
	}
	return counts, nil
}
