package repositories

import (
	stderrors "errors"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/errors"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview inserts the user's review. The unique index on user_id turns
// a second submission into ALREADY_CONSUMED.
func (r *ReviewRepository) CreateReview(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New(errors.ErrCodeAlreadyConsumed, "user already submitted a review")
		}
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create review")
	}
	return nil
}

func (r *ReviewRepository) HasReviewed(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check review")
	}
	return count > 0, nil
}

func (r *ReviewRepository) GetUserReview(userID uint) (*models.Review, error) {
	var review models.Review
	result := r.db.Where("user_id = ?", userID).First(&review)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "review not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get review")
	}

	return &review, nil
}

func (r *ReviewRepository) GetRecentReviews(limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get reviews")
	}
	return reviews, nil
}
