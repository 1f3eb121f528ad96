package models

import (
	"strings"
	"time"
	"unicode"
)

// DefaultPromoDiscount is the discount fraction applied when an admin
// creates a code without specifying one.
const DefaultPromoDiscount = 0.20

const minPromoCodeLength = 4

// PromoCode stores its code uppercased. The discount never changes after
// creation; admins only flip Active.
type PromoCode struct {
	ID       uint    `gorm:"primaryKey"`
	Code     string  `gorm:"uniqueIndex;type:varchar(50);not null"`
	Discount float64 `gorm:"not null;default:0.2"`
	Active   bool    `gorm:"not null;default:true"`

	Redemptions []PromoRedemption `gorm:"foreignKey:PromoCodeID;constraint:OnDelete:CASCADE"`
}

// PromoRedemption records a single redemption. The unique index on UserID is
// global across all codes: a user redeems at most one promo code ever, and
// the database enforces it even under concurrent redeems.
type PromoRedemption struct {
	ID          uint      `gorm:"primaryKey"`
	PromoCodeID uint      `gorm:"not null;index"`
	UserID      uint      `gorm:"not null;uniqueIndex"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// NormalizePromoCode uppercases and trims a user-entered code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidPromoCode reports whether the code is alphanumeric and long enough.
func ValidPromoCode(code string) bool {
	if len(code) < minPromoCodeLength {
		return false
	}
	for _, r := range code {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (PromoCode) TableName() string {
	return "promo_codes"
}

func (PromoRedemption) TableName() string {
	return "promo_redemptions"
}
