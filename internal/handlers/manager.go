package handlers

import (
	"github.com/koptenko/caseshop_bot/internal/config"
	"github.com/koptenko/caseshop_bot/internal/notify"
	"github.com/koptenko/caseshop_bot/internal/repositories"
	"github.com/koptenko/caseshop_bot/internal/services"
	"gorm.io/gorm"
)

type Manager struct {
	Config      *config.Config
	DB          *gorm.DB
	UserRepo    *repositories.UserRepository
	KeyRepo     *repositories.KeyRepository
	Reward      *services.RewardService
	Promos      *services.PromoService
	Orders      *services.OrderService
	Withdrawals *services.WithdrawalService
	Reviews     *services.ReviewService
	Stats       *services.StatsService
	Notifier    notify.Notifier
}

func NewManager(
	cfg *config.Config,
	db *gorm.DB,
	userRepo *repositories.UserRepository,
	keyRepo *repositories.KeyRepository,
	reward *services.RewardService,
	promos *services.PromoService,
	orders *services.OrderService,
	withdrawals *services.WithdrawalService,
	reviews *services.ReviewService,
	stats *services.StatsService,
	notifier notify.Notifier,
) *Manager {
	return &Manager{
		Config:      cfg,
		DB:          db,
		UserRepo:    userRepo,
		KeyRepo:     keyRepo,
		Reward:      reward,
		Promos:      promos,
		Orders:      orders,
		Withdrawals: withdrawals,
		Reviews:     reviews,
		Stats:       stats,
		Notifier:    notifier,
	}
}
