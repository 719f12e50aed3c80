package analytics

import (
	"context"
	"log"
	"time"

	"storeadmin/internal/caching"
	"storeadmin/internal/models"
	"storeadmin/internal/repositories"

	"github.com/google/uuid"
)

// metricsTTL keeps dashboard reads cheap between background refreshes.
const metricsTTL = 5 * time.Minute

// DashboardMetrics is everything the store dashboard renders.
type DashboardMetrics struct {
	StoreID      uuid.UUID      `json:"storeId"`
	TotalRevenue float64        `json:"totalRevenue"`
	SalesCount   int            `json:"salesCount"`
	StockCount   int            `json:"stockCount"`
	GraphRevenue []DailyRevenue `json:"graphRevenue"`
	LastUpdated  time.Time      `json:"lastUpdated"`
}

// DailyRevenue is one bucket of the trailing seven-day series.
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// Service computes dashboard aggregates over paid orders. Unpaid orders
// never contribute to any figure here.
type Service struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cacheSvc    *caching.CacheService
	now         func() time.Time
}

func NewService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, cacheSvc *caching.CacheService) *Service {
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cacheSvc:    cacheSvc,
		now:         time.Now,
	}
}

// Metrics returns the dashboard figures for a store, serving from cache
// when a fresh computation is already there.
func (s *Service) Metrics(ctx context.Context, storeID uuid.UUID) (*DashboardMetrics, error) {
	key := caching.ListKey(caching.KindDashboard, storeID)

	var cached DashboardMetrics
	if hit, err := s.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("dashboard cache read failed for store %s: %v", storeID.String(), err)
	}

	metrics, err := s.Compute(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetJSON(ctx, key, metrics, metricsTTL); err != nil {
		log.Printf("dashboard cache write failed for store %s: %v", storeID.String(), err)
	}
	return metrics, nil
}

// Compute recalculates the metrics from the database, bypassing the cache.
// The refresh job calls this directly to re-warm each store's entry.
func (s *Service) Compute(ctx context.Context, storeID uuid.UUID) (*DashboardMetrics, error) {
	paidOrders, err := s.orderRepo.ListPaidByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	stockCount, err := s.productRepo.CountInStock(ctx, storeID)
	if err != nil {
		return nil, err
	}

	var totalRevenue float64
	for _, order := range paidOrders {
		totalRevenue += order.Total()
	}

	metrics := &DashboardMetrics{
		StoreID:      storeID,
		TotalRevenue: totalRevenue,
		SalesCount:   len(paidOrders),
		StockCount:   stockCount,
		GraphRevenue: s.sevenDayRevenue(paidOrders),
		LastUpdated:  s.now().UTC(),
	}
	return metrics, nil
}

// sevenDayRevenue buckets paid orders into the seven calendar days ending
// today. Buckets match on the YYYY-MM-DD prefix of created_at, computed in
// UTC; orders near midnight in other timezones can land one bucket off.
func (s *Service) sevenDayRevenue(paidOrders []*models.Order) []DailyRevenue {
	today := s.now().UTC()
	series := make([]DailyRevenue, 0, 7)

	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		var revenue float64
		for _, order := range paidOrders {
			if order.CreatedAt.UTC().Format("2006-01-02") == date {
				revenue += order.Total()
			}
		}
		series = append(series, DailyRevenue{Date: date, Revenue: revenue})
	}
	return series
}

// RefreshAll recomputes and re-caches metrics for every given store.
func (s *Service) RefreshAll(ctx context.Context, storeIDs []uuid.UUID) {
	for _, storeID := range storeIDs {
		metrics, err := s.Compute(ctx, storeID)
		if err != nil {
			log.Printf("dashboard refresh failed for store %s: %v", storeID.String(), err)
			continue
		}
		key := caching.ListKey(caching.KindDashboard, storeID)
		if err := s.cacheSvc.SetJSON(ctx, key, metrics, metricsTTL); err != nil {
			log.Printf("dashboard cache write failed for store %s: %v", storeID.String(), err)
		}
	}
}
