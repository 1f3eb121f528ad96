package repositories

import (
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateOrder(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create order")
	}
	return nil
}

func (r *OrderRepository) GetOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	result := r.db.Preload("User").First(&order, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "order not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get order")
	}

	return &order, nil
}

// MarkWaitingConfirmation moves a pending order into the admin-review
// queue. The guarded UPDATE affects zero rows when the order has already
// left pending, which surfaces as INVALID_STATE.
func (r *OrderRepository) MarkWaitingConfirmation(orderID uint) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		Update("status", models.OrderStatusWaitingConfirmation)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return r.notPendingError(orderID)
	}
	return nil
}

// CompleteOrder transitions the order to completed and runs release inside
// the same transaction. The order row is locked first, so the terminal
// check, the status flip and the product release are one atomic unit —
// fulfillment happens at most once per order no matter how many confirm
// triggers race.
func (r *OrderRepository) CompleteOrder(orderID uint, release func(tx *gorm.DB, order *models.Order) error) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "order not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get order")
		}

		if !order.CanComplete() {
			return errors.New(errors.ErrCodeInvalidState, "order is not awaiting confirmation")
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusCompleted).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to complete order")
		}
		order.Status = models.OrderStatusCompleted

		if release != nil {
			return release(tx, &order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// RejectOrder moves a non-terminal order to rejected. No inventory is ever
// created on this path.
func (r *OrderRepository) RejectOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "order not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get order")
		}

		if !order.CanReject() {
			return errors.New(errors.ErrCodeInvalidState, "order already finalized")
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusRejected).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to reject order")
		}
		order.Status = models.OrderStatusRejected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) GetPendingOrders() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("User").
		Where("status = ?", models.OrderStatusWaitingConfirmation).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get pending orders")
	}
	return orders, nil
}

// Revenue returns the sum of completed order amounts.
func (r *OrderRepository) Revenue() (float64, error) {
	var total float64
	err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to sum revenue")
	}
	return total, nil
}

func (r *OrderRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count orders")
	}
	return count, nil
}

// SalesByProduct returns completed-order counts keyed by product id, for
// one product type.
func (r *OrderRepository) SalesByProduct(productType string) (map[int]int64, error) {
	type row struct {
		ProductID int
		Count     int64
	}
	var rows []row
	err := r.db.Model(&models.Order{}).
		Select("product_id, COUNT(*) as count").
		Where("status = ? AND product_type = ?", models.OrderStatusCompleted, productType).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count sales")
	}

	sales := make(map[int]int64, len(rows))
	for _, r := range rows {
		sales[r.ProductID] = r.Count
	}
	return sales, nil
}

func (r *OrderRepository) notPendingError(orderID uint) error {
	var order models.Order
	if err := r.db.First(&order, orderID).Error; err == gorm.ErrRecordNotFound {
		return errors.New(errors.ErrCodeNotFound, "order not found")
	}
	return errors.New(errors.ErrCodeInvalidState, "order is not pending")
}
