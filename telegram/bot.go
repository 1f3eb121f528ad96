package telegram

import (
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/koptenko/caseshop_bot/internal/config"
	"github.com/koptenko/caseshop_bot/internal/handlers"
	"github.com/koptenko/caseshop_bot/internal/middleware"
	"github.com/koptenko/caseshop_bot/internal/notify"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/internal/services"
	"github.com/koptenko/caseshop_bot/pkg/logger"
	"gorm.io/gorm"
)

const numWorkers = 10

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	db       *gorm.DB
	handlers *handlers.Manager

	// Shared with the HTTP server
	Orders   *services.OrderService
	Users    *repositories.UserRepository
	Notifier notify.Notifier
	Limiter  *middleware.RateLimiter

	// Conversation state
	sessions map[int64]*handlers.UserSession
	mu       sync.RWMutex

	// Worker pool for parallel processing
	workerChans []chan tgbotapi.Update
}

func InitBot(cfg *config.Config, db *gorm.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	promoRepo := repositories.NewPromoRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	keyRepo := repositories.NewKeyRepository(db)

	// Services
	reward := services.NewRewardService(inventoryRepo)
	promos := services.NewPromoService(promoRepo)
	fulfillment := services.NewFulfillmentService(orderRepo, keyRepo)
	orders := services.NewOrderService(orderRepo, promos, fulfillment,
		cfg.StarsToRub, cfg.MinStarsPurchase, cfg.PaymentTolerance)
	withdrawals := services.NewWithdrawalService(withdrawalRepo, cfg.MinWithdrawal, cfg.GameCommission)
	reviews := services.NewReviewService(reviewRepo)
	stats := services.NewStatsService(userRepo, orderRepo, withdrawalRepo, keyRepo)

	notifier := notify.NewTelegramNotifier(api, cfg.AdminIDs, cfg.ReviewChannel)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerUser*5, time.Minute)

	mgr := handlers.NewManager(cfg, db, userRepo, keyRepo,
		reward, promos, orders, withdrawals, reviews, stats, notifier)

	bot := &Bot{
		api:         api,
		config:      cfg,
		db:          db,
		handlers:    mgr,
		Orders:      orders,
		Users:       userRepo,
		Notifier:    notifier,
		Limiter:     limiter,
		sessions:    make(map[int64]*handlers.UserSession),
		workerChans: make([]chan tgbotapi.Update, numWorkers),
	}

	for i := 0; i < numWorkers; i++ {
		bot.workerChans[i] = make(chan tgbotapi.Update, 100)
		go bot.startWorker(bot.workerChans[i])
	}

	go bot.startUpdateListener()

	return bot, nil
}

func (b *Bot) startUpdateListener() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for {
		logger.Info("Starting update listener...")
		updates := b.api.GetUpdatesChan(u)

		for update := range updates {
			var userID int64
			if update.Message != nil {
				userID = update.Message.From.ID
			} else if update.CallbackQuery != nil {
				userID = update.CallbackQuery.From.ID
			} else if update.PreCheckoutQuery != nil {
				userID = update.PreCheckoutQuery.From.ID
			}

			if userID != 0 {
				// Hashed dispatch to workers for per-user ordered processing
				workerIdx := userID % int64(len(b.workerChans))
				if workerIdx < 0 {
					workerIdx = -workerIdx
				}
				b.workerChans[workerIdx] <- update
			} else {
				go b.handleUpdate(update)
			}
		}

		logger.Warn("Update channel closed. Restarting in 5 seconds...")
		time.Sleep(5 * time.Second)
	}
}

func (b *Bot) startWorker(ch chan tgbotapi.Update) {
	for update := range ch {
		b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in handleUpdate", "error", r)
		}
	}()

	if update.PreCheckoutQuery != nil {
		b.answerPreCheckout(update.PreCheckoutQuery)
	} else if update.Message != nil {
		b.handleMessage(update.Message)
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// answerPreCheckout approves a Stars invoice checkout. The actual
// fulfillment happens on the SuccessfulPayment message that follows.
func (b *Bot) answerPreCheckout(q *tgbotapi.PreCheckoutQuery) {
	pca := tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: q.ID,
		OK:                 true,
	}
	if _, err := b.api.Request(pca); err != nil {
		logger.Error("Failed to answer pre-checkout query", "error", err)
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	userID := message.From.ID

	if !b.Limiter.AllowUser(userID) {
		logger.Debug("Rate limited", "user_id", userID)
		return
	}

	if message.SuccessfulPayment != nil {
		b.handlers.HandleSuccessfulPayment(userID, message.SuccessfulPayment.InvoicePayload, b)
		return
	}

	session := b.getSession(userID)

	if message.IsCommand() {
		b.handleCommand(message, session)
		return
	}

	// Conversation states take priority over menu buttons.
	switch session.State {
	case handlers.StateAwaitingPromo:
		b.handlers.HandlePromoInput(userID, message.Text, session, b)
		return
	case handlers.StateWithdrawAmount, handlers.StateWithdrawNickname,
		handlers.StateWithdrawSkinName, handlers.StateWithdrawSkinPrice,
		handlers.StateWithdrawScreenshot:
		b.handlers.HandleWithdrawInput(userID, message.Text, largestPhotoID(message), session, b)
		return
	case handlers.StateReviewText:
		b.handlers.HandleReviewText(userID, message.Text, session, b)
		return
	}

	switch message.Text {
	case BtnShop:
		b.handlers.HandleShop(userID, b)
	case BtnVPN:
		b.handlers.HandleVPNShop(userID, b)
	case BtnInventory:
		b.handlers.HandleInventory(userID, b)
	case BtnProfile:
		b.handlers.HandleProfile(userID, b)
	case BtnWithdraw:
		b.handlers.HandleWithdrawStart(userID, session, b)
	case BtnReview:
		b.handlers.HandleReviewStart(userID, b)
	case BtnHelp:
		b.handlers.HandleHelp(userID, b)
	case BtnAdmin:
		b.handlers.HandleAdminPanel(userID, b)
	}
}

func (b *Bot) handleCommand(message *tgbotapi.Message, session *handlers.UserSession) {
	userID := message.From.ID
	args := message.CommandArguments()

	switch cmd := message.Command(); cmd {
	case "start":
		session.Clear()
		b.handlers.HandleStart(userID, message.From.UserName, fullName(message.From), b)
	case "help":
		b.handlers.HandleHelp(userID, b)
	case "cancel":
		session.Clear()
		b.SendMessage(userID, "Действие отменено.", MainMenuKeyboard(b.config.IsAdmin(userID)))
	case "admin":
		b.handlers.HandleAdminPanel(userID, b)
	case "stats":
		b.handlers.HandleStats(userID, b)
	case "promo_list":
		b.handlers.HandlePromoList(userID, b)
	case "promo_create", "promo_gen", "promo_toggle", "promo_del":
		b.handlers.HandlePromoCommand(userID, cmd, args, b)
	case "addkey":
		b.handlers.HandleAddKey(userID, args, b)
	}
}

func (b *Bot) handleCallbackQuery(cq *tgbotapi.CallbackQuery) {
	userID := cq.From.ID

	if !b.Limiter.AllowUser(userID) {
		b.AnswerCallbackQuery(cq.ID, "Слишком много запросов, подождите минуту.")
		return
	}
	b.AnswerCallbackQuery(cq.ID, "")

	session := b.getSession(userID)
	cb := ParseCallback(cq.Data)

	switch cb.Intent {
	case IntentShop:
		b.handlers.HandleShop(userID, b)
	case IntentVPN:
		b.handlers.HandleVPNShop(userID, b)
	case IntentCaseDetail:
		b.handlers.HandleCaseDetail(userID, int(cb.ID), b)
	case IntentPlanDetail:
		b.handlers.HandlePlanDetail(userID, int(cb.ID), b)
	case IntentBuy:
		b.handlers.HandleBuyRequest(userID, cb.ProductType, int(cb.ID), cb.Method, b)
	case IntentPromoYes:
		b.handlers.HandlePromoPrompt(userID, cb.ProductType, int(cb.ID), cb.Method, session, b)
	case IntentPromoNo:
		b.handlers.HandleBuyWithoutPromo(userID, cb.ProductType, int(cb.ID), cb.Method, b)
	case IntentPaid:
		b.handlers.HandleMarkPaid(userID, uint(cb.ID), b)
	case IntentOpenCase:
		b.handlers.HandleOpenCase(userID, uint(cb.ID), b)
	case IntentSellItem:
		b.handlers.HandleSellItem(userID, uint(cb.ID), b)
	case IntentRate:
		b.handlers.HandleRating(userID, int(cb.ID), session, b)
	case IntentReviews:
		b.handlers.HandleRecentReviews(userID, b)
	case IntentAdminStats:
		b.handlers.HandleStats(userID, b)
	case IntentAdminOrders:
		b.handlers.HandlePendingOrders(userID, b)
	case IntentAdminWithdrawals:
		b.handlers.HandlePendingWithdrawals(userID, b)
	case IntentAdminPromos:
		b.handlers.HandlePromoList(userID, b)
	case IntentApproveOrder:
		b.handlers.HandleApproveOrder(userID, uint(cb.ID), b)
	case IntentRejectOrder:
		b.handlers.HandleRejectOrder(userID, uint(cb.ID), b)
	case IntentApproveWithdrawal:
		b.handlers.HandleApproveWithdrawal(userID, uint(cb.ID), b)
	case IntentRejectWithdrawal:
		b.handlers.HandleRejectWithdrawal(userID, uint(cb.ID), b)
	case IntentRefundWithdrawal:
		b.handlers.HandleRefundWithdrawal(userID, uint(cb.ID), b)
	default:
		logger.Debug("Unknown callback", "data", cq.Data)
	}
}

func (b *Bot) getSession(userID int64) *handlers.UserSession {
	b.mu.Lock()
	defer b.mu.Unlock()

	session, ok := b.sessions[userID]
	if !ok {
		session = handlers.NewSession()
		b.sessions[userID] = session
	}
	return session
}

// SendMessage sends text with an optional keyboard and returns the message
// ID, or 0 on failure.
func (b *Bot) SendMessage(chatID int64, text string, keyboard interface{}) int {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	sent, err := b.api.Send(msg)
	if err != nil {
		logger.Error("Failed to send message", "chat_id", chatID, "error", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) EditMessage(chatID int64, messageID int, text string, keyboard interface{}) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if kb, ok := keyboard.(tgbotapi.InlineKeyboardMarkup); ok {
		edit.ReplyMarkup = &kb
	}

	if _, err := b.api.Send(edit); err != nil {
		logger.Error("Failed to edit message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

func (b *Bot) AnswerCallbackQuery(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		logger.Error("Failed to answer callback query", "error", err)
	}
}

// SendStarsInvoice sends a Telegram Stars invoice. Stars invoices use the
// XTR currency and no provider token.
func (b *Bot) SendStarsInvoice(chatID int64, title, description, payload string, stars int) error {
	invoice := tgbotapi.NewInvoice(chatID, title, description, payload,
		"", "", "XTR", []tgbotapi.LabeledPrice{{Label: title, Amount: stars}})

	if _, err := b.api.Send(invoice); err != nil {
		return fmt.Errorf("failed to send invoice: %w", err)
	}
	return nil
}

func (b *Bot) SendMainMenu(chatID int64, isAdmin bool) {
	b.SendMessage(chatID, "Главное меню:", MainMenuKeyboard(isAdmin))
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func largestPhotoID(message *tgbotapi.Message) string {
	if len(message.Photo) == 0 {
		return ""
	}
	return message.Photo[len(message.Photo)-1].FileID
}

func fullName(user *tgbotapi.User) string {
	if user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	return user.FirstName
}
