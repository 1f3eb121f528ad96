package models

import (
	"time"
)

// RarityCase tags an unopened case instance in the inventory. Everything
// else is an item instance whose name, rarity and value were copied from an
// item template at draw time.
const RarityCase = "Case"

type InventoryEntry struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;index"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CaseID     int       `gorm:"not null"`
	ItemName   string    `gorm:"type:varchar(255);not null"`
	ItemRarity string    `gorm:"type:varchar(50);not null;index"`
	ItemValue  float64   `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// IsCase reports whether the entry is an unopened case instance.
func (e *InventoryEntry) IsCase() bool {
	return e.ItemRarity == RarityCase
}

func (InventoryEntry) TableName() string {
	return "inventory_entries"
}
