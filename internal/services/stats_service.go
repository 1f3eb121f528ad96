package services

import (
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/koptenko/caseshop_bot/internal/repositories"
)

// Stats is the admin dashboard snapshot.
type Stats struct {
	Users           int64
	CompletedOrders int64
	Revenue         float64
	WithdrawalsPaid int64
	GoldPaidOut     float64
	CaseSales       map[int]int64
	PlanSales       map[int]int64
	KeysRemaining   map[int]int64
}

type StatsService struct {
	userRepo       *repositories.UserRepository
	orderRepo      *repositories.OrderRepository
	withdrawalRepo *repositories.WithdrawalRepository
	keyRepo        *repositories.KeyRepository
}

func NewStatsService(
	userRepo *repositories.UserRepository,
	orderRepo *repositories.OrderRepository,
	withdrawalRepo *repositories.WithdrawalRepository,
	keyRepo *repositories.KeyRepository,
) *StatsService {
	return &StatsService{
		userRepo:       userRepo,
		orderRepo:      orderRepo,
		withdrawalRepo: withdrawalRepo,
		keyRepo:        keyRepo,
	}
}

func (s *StatsService) Collect() (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.Users, err = s.userRepo.CountUsers(); err != nil {
		return nil, err
	}
	if stats.CompletedOrders, err = s.orderRepo.CountCompleted(); err != nil {
		return nil, err
	}
	if stats.Revenue, err = s.orderRepo.Revenue(); err != nil {
		return nil, err
	}
	if stats.WithdrawalsPaid, stats.GoldPaidOut, err = s.withdrawalRepo.PaidOut(); err != nil {
		return nil, err
	}
	if stats.CaseSales, err = s.orderRepo.SalesByProduct(models.ProductTypeCase); err != nil {
		return nil, err
	}
	if stats.PlanSales, err = s.orderRepo.SalesByProduct(models.ProductTypePlan); err != nil {
		return nil, err
	}
	if stats.KeysRemaining, err = s.keyRepo.CountUnused(); err != nil {
		return nil, err
	}

	return stats, nil
}
