// Package notify delivers best-effort out-of-band messages: admin alerts
// about new orders and withdrawals, buyer receipts, and review reposts to
// the public channel. Delivery failures are logged and swallowed, they never
// fail the triggering operation.
package notify

import (
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

type Notifier interface {
	NotifyAdmins(text string)
	NotifyUser(telegramID int64, text string)
	PostToChannel(text string)
}

type TelegramNotifier struct {
	api      *tgbotapi.BotAPI
	adminIDs []int64

	channel     string
	channelOnce sync.Once
	channelID   int64
}

func NewTelegramNotifier(api *tgbotapi.BotAPI, adminIDs []int64, channel string) *TelegramNotifier {
	return &TelegramNotifier{
		api:      api,
		adminIDs: adminIDs,
		channel:  channel,
	}
}

func (n *TelegramNotifier) NotifyAdmins(text string) {
	for _, id := range n.adminIDs {
		n.send(id, text)
	}
}

func (n *TelegramNotifier) NotifyUser(telegramID int64, text string) {
	n.send(telegramID, text)
}

// PostToChannel sends to the configured review channel. The channel is
// resolved once: a numeric value is a chat ID, anything else is treated as a
// public @username.
func (n *TelegramNotifier) PostToChannel(text string) {
	if n.channel == "" {
		return
	}

	n.channelOnce.Do(func() {
		if id, err := strconv.ParseInt(n.channel, 10, 64); err == nil {
			n.channelID = id
			return
		}
		chat, err := n.api.GetChat(tgbotapi.ChatInfoConfig{
			ChatConfig: tgbotapi.ChatConfig{SuperGroupUsername: n.channel},
		})
		if err != nil {
			logger.Warn("Failed to resolve review channel", "channel", n.channel, "error", err)
			return
		}
		n.channelID = chat.ID
	})

	if n.channelID == 0 {
		return
	}

	msg := tgbotapi.NewMessage(n.channelID, text)
	if _, err := n.api.Send(msg); err != nil {
		logger.Warn("Failed to post to channel", "channel", n.channel, "error", err)
	}
}

func (n *TelegramNotifier) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		logger.Warn("Failed to send notification", "chat_id", chatID, "error", err)
	}
}
