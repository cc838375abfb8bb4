package service

import (
	"context"
	"time"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/dto"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port"
)

const recentSalesDays = 7

type DashboardService struct {
	store port.SnapshotStore
	now   func() time.Time
}

func NewDashboardService(store port.SnapshotStore) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// Summary aggregates the persisted state into the admin dashboard
// figures, including a per-day sales series for the trailing week.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	revenue := domain.Amount(0)
	for _, order := range snapshot.Orders {
		revenue = revenue.Add(order.Total)
	}

	return &dto.DashboardSummary{
		TotalRevenue:   revenue.Float64(),
		TotalOrders:    len(snapshot.Orders),
		TotalCustomers: len(snapshot.Customers),
		TotalProducts:  len(snapshot.Products),
		RecentSales:    s.recentSales(snapshot.Orders),
	}, nil
}

func (s *DashboardService) recentSales(orders []domain.Order) []dto.SalesPoint {
	const dayKey = "2006-01-02"
	today := s.now()

	points := make([]dto.SalesPoint, recentSalesDays)
	index := make(map[string]int, recentSalesDays)
	totals := make([]domain.Amount, recentSalesDays)
	for i := 0; i < recentSalesDays; i++ {
		day := today.AddDate(0, 0, i-recentSalesDays+1)
		points[i] = dto.SalesPoint{Name: day.Format("Jan 02")}
		index[day.Format(dayKey)] = i
	}

	for _, order := range orders {
		if i, ok := index[order.Date.Format(dayKey)]; ok {
			totals[i] = totals[i].Add(order.Total)
		}
	}

	for i := range points {
		points[i].Total = totals[i].Float64()
	}
	return points
}
