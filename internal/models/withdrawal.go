package models

import (
	"time"
)

// Withdrawal status constants. Both completed and rejected are terminal.
const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusCompleted = "completed"
	WithdrawalStatusRejected  = "rejected"
)

// Withdrawal holds a cash-out request. The amount is debited from the user's
// balance at creation time (pessimistic hold). Rejection does not credit the
// balance back automatically; an operator issues the compensating credit,
// tracked by Refunded.
type Withdrawal struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Amount       float64   `gorm:"not null"`
	GameNickname string    `gorm:"type:varchar(255);not null"`
	SkinName     string    `gorm:"type:varchar(255);not null"`
	SkinPrice    float64   `gorm:"not null"`
	ScreenshotID string    `gorm:"type:varchar(500)"`
	Status       string    `gorm:"type:varchar(30);not null;default:'pending';index"`
	Refunded     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (w *Withdrawal) IsTerminal() bool {
	return w.Status == WithdrawalStatusCompleted || w.Status == WithdrawalStatusRejected
}

// CanRefund reports whether an operator may issue the compensating credit.
func (w *Withdrawal) CanRefund() bool {
	return w.Status == WithdrawalStatusRejected && !w.Refunded
}

// ExpectedSkinPrice returns the in-game resale price the user must set for a
// payout of amount GOLD, given the game's commission rate.
func ExpectedSkinPrice(amount, commissionRate float64) float64 {
	return amount * (1 + commissionRate)
}

// SkinPriceWithinTolerance checks the claimed resale price against the
// expected one. The 1-unit tolerance absorbs client-side rounding.
func SkinPriceWithinTolerance(claimed, expected float64) bool {
	diff := claimed - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1.0
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
