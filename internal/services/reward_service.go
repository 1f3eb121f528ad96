package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/pkg/errors"
)

// RewardService owns the weighted item draw and the open/sell lifecycle of
// inventory entries.
type RewardService struct {
	inventoryRepo *repositories.InventoryRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRewardService(inventoryRepo *repositories.InventoryRepository) *RewardService {
	return NewRewardServiceWithSource(inventoryRepo, rand.NewSource(time.Now().UnixNano()))
}

// NewRewardServiceWithSource lets tests pin the draw sequence.
func NewRewardServiceWithSource(inventoryRepo *repositories.InventoryRepository, src rand.Source) *RewardService {
	return &RewardService{
		inventoryRepo: inventoryRepo,
		rng:           rand.New(src),
	}
}

// Draw picks one template proportionally to its Chance weight. Weights need
// not sum to 100; the draw normalizes by the total. The last item is the
// fallback for the floating-point edge where the cumulative walk never
// triggers.
func (s *RewardService) Draw(items []catalog.ItemTemplate) catalog.ItemTemplate {
	var total float64
	for _, it := range items {
		total += it.Chance
	}

	s.mu.Lock()
	r := s.rng.Float64() * total
	s.mu.Unlock()

	var upto float64
	for _, it := range items {
		if upto+it.Chance >= r {
			return it
		}
		upto += it.Chance
	}
	return items[len(items)-1]
}

// OpenCase consumes an unopened case instance from the user's inventory and
// replaces it with a drawn item. The swap is atomic: the inventory never
// holds both, and a double-open of the same entry fails on the second try.
func (s *RewardService) OpenCase(userID, entryID uint) (*models.InventoryEntry, error) {
	entry, err := s.inventoryRepo.GetEntryByID(entryID)
	if err != nil {
		return nil, err
	}

	if entry.UserID != userID {
		return nil, errors.New(errors.ErrCodeValidationFailed, "case belongs to another user")
	}
	if !entry.IsCase() {
		return nil, errors.New(errors.ErrCodeInvalidState, "inventory entry is not a case")
	}

	caseDef, ok := catalog.GetCase(entry.CaseID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "case is no longer in the catalog")
	}

	tmpl := s.Draw(caseDef.Items)
	item := &models.InventoryEntry{
		UserID:     userID,
		CaseID:     caseDef.ID,
		ItemName:   tmpl.Name,
		ItemRarity: tmpl.Rarity,
		ItemValue:  tmpl.Value,
	}

	if err := s.inventoryRepo.ReplaceCaseWithItem(entryID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SellItem removes the item and credits its value to the balance. Returns
// the new balance.
func (s *RewardService) SellItem(userID, entryID uint) (float64, error) {
	return s.inventoryRepo.SellEntry(entryID, userID)
}

func (s *RewardService) GetInventory(userID uint) ([]models.InventoryEntry, error) {
	return s.inventoryRepo.GetUserInventory(userID)
}

func (s *RewardService) GetCases(userID uint) ([]models.InventoryEntry, error) {
	return s.inventoryRepo.GetUserCases(userID)
}

func (s *RewardService) GetItems(userID uint) ([]models.InventoryEntry, error) {
	return s.inventoryRepo.GetUserItems(userID)
}
