package models

import (
	"time"
)

// MinReviewTextLength is the minimum free-text length after sanitization.
const MinReviewTextLength = 10

// Review is immutable once created; the unique index on UserID enforces at
// most one review per user.
type Review struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Rating    int       `gorm:"not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ValidRating reports whether the rating is in the 1..5 range.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (Review) TableName() string {
	return "reviews"
}
