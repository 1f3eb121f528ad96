package services

import (
	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"gorm.io/gorm"
)

// Delivery describes what a fulfilled order handed to the buyer, for the
// confirmation message.
type Delivery struct {
	ProductType string
	CaseName    string
	PlanName    string
	LicenseKey  string
}

// FulfillmentService releases the purchased product when an order is
// confirmed, either by an admin or by the payment webhook. Release runs
// inside the order-completion transaction, so a failed release (an empty
// key pool, say) rolls the status flip back and the order stays pending.
type FulfillmentService struct {
	orderRepo *repositories.OrderRepository
	keyRepo   *repositories.KeyRepository
}

func NewFulfillmentService(orderRepo *repositories.OrderRepository, keyRepo *repositories.KeyRepository) *FulfillmentService {
	return &FulfillmentService{
		orderRepo: orderRepo,
		keyRepo:   keyRepo,
	}
}

// Fulfill completes the order and releases its product atomically. Repeat
// calls for the same order fail with INVALID_STATE, so concurrent confirm
// triggers deliver at most once.
func (s *FulfillmentService) Fulfill(orderID uint) (*models.Order, *Delivery, error) {
	var delivery Delivery

	order, err := s.orderRepo.CompleteOrder(orderID, func(tx *gorm.DB, o *models.Order) error {
		switch o.ProductType {
		case models.ProductTypeCase:
			return s.releaseCase(tx, o, &delivery)
		case models.ProductTypePlan:
			return s.releaseKey(tx, o, &delivery)
		default:
			return errors.New(errors.ErrCodeDeliveryFailed, "unknown product type")
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return order, &delivery, nil
}

// releaseCase appends an unopened case instance to the buyer's inventory.
func (s *FulfillmentService) releaseCase(tx *gorm.DB, o *models.Order, d *Delivery) error {
	caseDef, ok := catalog.GetCase(o.ProductID)
	if !ok {
		return errors.New(errors.ErrCodeDeliveryFailed, "case is no longer in the catalog")
	}

	entry := &models.InventoryEntry{
		UserID:     o.UserID,
		CaseID:     caseDef.ID,
		ItemName:   caseDef.Name,
		ItemRarity: models.RarityCase,
		ItemValue:  caseDef.GoldYield,
	}
	if err := tx.Create(entry).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add case to inventory")
	}

	d.ProductType = models.ProductTypeCase
	d.CaseName = caseDef.Name
	return nil
}

// releaseKey pops one unused license key for the plan, without replacement.
func (s *FulfillmentService) releaseKey(tx *gorm.DB, o *models.Order, d *Delivery) error {
	plan, ok := catalog.GetPlan(o.ProductID)
	if !ok {
		return errors.New(errors.ErrCodeDeliveryFailed, "plan is no longer in the catalog")
	}

	key, err := s.keyRepo.PopUnused(tx, plan.ID, o.ID)
	if err != nil {
		return err
	}

	d.ProductType = models.ProductTypePlan
	d.PlanName = plan.Name
	d.LicenseKey = key
	return nil
}
