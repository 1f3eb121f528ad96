package repositories

import (
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) AddEntry(entry *models.InventoryEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add inventory entry")
	}
	return nil
}

func (r *InventoryRepository) GetEntryByID(id uint) (*models.InventoryEntry, error) {
	var entry models.InventoryEntry
	result := r.db.First(&entry, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "inventory entry not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get inventory entry")
	}

	return &entry, nil
}

// GetUserInventory returns all entries for the user, cases first, newest
// first within each group.
func (r *InventoryRepository) GetUserInventory(userID uint) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	err := r.db.Where("user_id = ?", userID).
		Order("CASE WHEN item_rarity = 'Case' THEN 0 ELSE 1 END, created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get inventory")
	}
	return entries, nil
}

func (r *InventoryRepository) GetUserCases(userID uint) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	err := r.db.Where("user_id = ? AND item_rarity = ?", userID, models.RarityCase).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get cases")
	}
	return entries, nil
}

func (r *InventoryRepository) GetUserItems(userID uint) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	err := r.db.Where("user_id = ? AND item_rarity != ?", userID, models.RarityCase).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get items")
	}
	return entries, nil
}

// ReplaceCaseWithItem deletes the consumed case instance and inserts the
// drawn item in one transaction, keeping the inventory count conserved. The
// case row is locked so a double-open of the same entry loses the race and
// gets NOT_FOUND.
func (r *InventoryRepository) ReplaceCaseWithItem(entryID uint, item *models.InventoryEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var entry models.InventoryEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&entry, entryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "case not found in inventory")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get case entry")
		}

		if !entry.IsCase() {
			return errors.New(errors.ErrCodeInvalidState, "inventory entry is not a case")
		}
		if entry.UserID != item.UserID {
			return errors.New(errors.ErrCodeValidationFailed, "case belongs to another user")
		}

		if err := tx.Delete(&entry).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove case entry")
		}
		if err := tx.Create(item).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add drawn item")
		}
		return nil
	})
}

// SellEntry removes an item entry and credits its value to the owner's
// balance in one transaction. Case instances cannot be sold, only opened.
func (r *InventoryRepository) SellEntry(entryID, userID uint) (float64, error) {
	var newBalance float64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var entry models.InventoryEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&entry, entryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "inventory entry not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get inventory entry")
		}

		if entry.UserID != userID {
			return errors.New(errors.ErrCodeValidationFailed, "item belongs to another user")
		}
		if entry.IsCase() {
			return errors.New(errors.ErrCodeInvalidState, "cases cannot be sold")
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "user not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
		}

		if err := tx.Delete(&entry).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove inventory entry")
		}

		newBalance = user.Balance + entry.ItemValue
		if err := tx.Model(&user).Update("balance", newBalance).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to credit balance")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}
