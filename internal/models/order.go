package models

import (
	"time"
)

// Order status constants. Completed and rejected are terminal: no transition
// leaves them.
const (
	OrderStatusPending             = "pending"
	OrderStatusWaitingConfirmation = "waiting_confirmation"
	OrderStatusCompleted           = "completed"
	OrderStatusRejected            = "rejected"
)

// Payment method constants
const (
	PaymentMethodCard  = "card"
	PaymentMethodStars = "stars"
)

// Product type constants. The type decides which pool fulfills the order: a
// case order appends a case instance to the inventory, a plan order pops a
// license key.
const (
	ProductTypeCase = "case"
	ProductTypePlan = "plan"
)

type Order struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"not null;index"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductType   string    `gorm:"type:varchar(20);not null;default:'case'"`
	ProductID     int       `gorm:"not null;index"`
	Amount        float64   `gorm:"not null"`
	PaymentMethod string    `gorm:"type:varchar(20);not null"`
	PromoCode     string    `gorm:"type:varchar(50)"`
	Status        string    `gorm:"type:varchar(30);not null;default:'pending';index"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusRejected
}

// CanMarkPaid reports whether the user may move the order into the
// admin-review queue.
func (o *Order) CanMarkPaid() bool {
	return o.Status == OrderStatusPending
}

// CanComplete reports whether a confirm trigger (admin approval or payment
// webhook) may fulfill the order. The webhook path confirms straight from
// pending.
func (o *Order) CanComplete() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusWaitingConfirmation
}

func (o *Order) CanReject() bool {
	return !o.IsTerminal()
}

func (Order) TableName() string {
	return "orders"
}
