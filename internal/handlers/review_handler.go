package handlers

import (
	"fmt"
	"strings"

	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

const recentReviewsLimit = 5

// HandleReviewStart asks for a rating, once per user.
func (m *Manager) HandleReviewStart(telegramID int64, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	reviewed, err := m.Reviews.HasReviewed(user.ID)
	if err != nil {
		logger.Error("Failed to check review", "user_id", user.ID, "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}
	if reviewed {
		bot.SendMessage(telegramID, "⭐ Вы уже оставили отзыв. Спасибо!", RecentReviewsKeyboard())
		return
	}

	bot.SendMessage(telegramID, "⭐ Оцените магазин:", RatingKeyboard())
}

// HandleRecentReviews shows the latest published reviews.
func (m *Manager) HandleRecentReviews(telegramID int64, bot BotInterface) {
	reviews, err := m.Reviews.Recent(recentReviewsLimit)
	if err != nil {
		logger.Error("Failed to load reviews", "error", err)
		bot.SendMessage(telegramID, MsgInternalError, nil)
		return
	}
	if len(reviews) == 0 {
		bot.SendMessage(telegramID, "Отзывов пока нет. Станьте первым!", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("💬 Последние отзывы:\n\n")
	for _, r := range reviews {
		fmt.Fprintf(&sb, "%s %s\n%s\n\n",
			strings.Repeat("⭐", r.Rating), displayName(&r.User), r.Text)
	}
	bot.SendMessage(telegramID, sb.String(), nil)
}

// HandleRating stores the chosen rating and asks for the text.
func (m *Manager) HandleRating(telegramID int64, rating int, session *UserSession, bot BotInterface) {
	if !models.ValidRating(rating) {
		bot.SendMessage(telegramID, "⚠️ Оценка должна быть от 1 до 5.", nil)
		return
	}

	session.Clear()
	session.State = StateReviewText
	session.Set(KeyRating, fmt.Sprintf("%d", rating))
	bot.SendMessage(telegramID, fmt.Sprintf(
		"Оценка: %s\n\nТеперь напишите пару слов о магазине (минимум %d символов):",
		strings.Repeat("⭐", rating), models.MinReviewTextLength), nil)
}

// HandleReviewText saves the review and reposts it to the public channel.
func (m *Manager) HandleReviewText(telegramID int64, text string, session *UserSession, bot BotInterface) {
	user, err := m.UserRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		session.Clear()
		bot.SendMessage(telegramID, "Сначала нажмите /start", nil)
		return
	}

	rating := atoiOrZero(session.Get(KeyRating))
	session.Clear()

	review, err := m.Reviews.SubmitReview(user.ID, rating, text)
	if err != nil {
		if appMsg := userFacingError(err); appMsg != "" {
			bot.SendMessage(telegramID, appMsg, nil)
		} else {
			logger.Error("Failed to submit review", "user_id", user.ID, "error", err)
			bot.SendMessage(telegramID, MsgInternalError, nil)
		}
		return
	}

	bot.SendMessage(telegramID, "💚 Спасибо за отзыв!", nil)

	m.Notifier.PostToChannel(fmt.Sprintf("%s\nот %s\n\n%s",
		strings.Repeat("⭐", review.Rating), displayName(user), review.Text))
}
