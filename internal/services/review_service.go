package services

import (
	"fmt"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/internal/security"
	"github.com/koptenko/caseshop_bot/pkg/errors"
)

type ReviewService struct {
	repo *repositories.ReviewRepository
}

func NewReviewService(repo *repositories.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// SubmitReview stores the user's single review. Text is sanitized before the
// length check so HTML padding cannot pass it.
func (s *ReviewService) SubmitReview(userID uint, rating int, text string) (*models.Review, error) {
	if !models.ValidRating(rating) {
		return nil, errors.New(errors.ErrCodeValidationFailed, "rating must be between 1 and 5")
	}

	text = security.SanitizeString(text)
	if len([]rune(text)) < models.MinReviewTextLength {
		return nil, errors.New(errors.ErrCodeValidationFailed,
			fmt.Sprintf("review text must be at least %d characters", models.MinReviewTextLength))
	}

	review := &models.Review{
		UserID: userID,
		Rating: rating,
		Text:   text,
	}
	if err := s.repo.CreateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) HasReviewed(userID uint) (bool, error) {
	return s.repo.HasReviewed(userID)
}

func (s *ReviewService) Recent(limit int) ([]models.Review, error) {
	return s.repo.GetRecentReviews(limit)
}
