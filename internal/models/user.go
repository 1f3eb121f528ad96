package models

import (
	"time"
)

// User is created on first interaction and never deleted. Balance is GOLD
// credit and is only mutated by item sales, withdrawal creation and operator
// refunds.
type User struct {
	ID         uint      `gorm:"primaryKey"`
	TelegramID int64     `gorm:"uniqueIndex;not null"`
	Username   string    `gorm:"type:varchar(255)"`
	FullName   string    `gorm:"type:varchar(255)"`
	Balance    float64   `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
