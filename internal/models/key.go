package models

import (
	"time"
)

// LicenseKey is a VPN subscription key in the dispensing pool. A key is
// drawn without replacement: Used flips to true and OrderID records the
// order it was dispensed to, exactly once.
type LicenseKey struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"uniqueIndex;type:varchar(255);not null"`
	PlanID    int       `gorm:"not null;index"`
	Used      bool      `gorm:"not null;default:false;index"`
	OrderID   *uint     `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LicenseKey) TableName() string {
	return "license_keys"
}
