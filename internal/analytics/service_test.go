package analytics

import (
	"context"
	"testing"
	"time"

	"storeadmin/internal/caching"
	"storeadmin/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *models.Order, productIDs []uuid.UUID) error {
	args := m.Called(ctx, order, productIDs)
	return args.Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *mockOrderRepo) ListPaidByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *mockOrderRepo) MarkPaid(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) CountStaleUnpaid(ctx context.Context, olderThan time.Time) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product, sizeIDs, colorIDs []uuid.UUID, imageURLs []string) error {
	args := m.Called(ctx, product, sizeIDs, colorIDs, imageURLs)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.Product, sizeIDs, colorIDs []uuid.UUID, imageURLs []string) error {
	args := m.Called(ctx, product, sizeIDs, colorIDs, imageURLs)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func (m *mockProductRepo) ListByStore(ctx context.Context, storeID uuid.UUID, filter *models.ProductFilter) ([]*models.Product, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *mockProductRepo) CountInStock(ctx context.Context, storeID uuid.UUID) (int, error) {
	args := m.Called(ctx, storeID)
	return args.Int(0), args.Error(1)
}

func paidOrder(storeID uuid.UUID, createdAt time.Time, prices ...float64) *models.Order {
	order := &models.Order{
		ID:        uuid.New(),
		StoreID:   storeID,
		IsPaid:    true,
		CreatedAt: createdAt,
	}
	for _, price := range prices {
		order.OrderItems = append(order.OrderItems, &models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    uuid.New(),
			ProductPrice: price,
		})
	}
	return order
}

func newTestService(orderRepo *mockOrderRepo, productRepo *mockProductRepo, now time.Time) *Service {
	svc := NewService(orderRepo, productRepo, caching.NewCacheService(caching.NewMemoryStore()))
	svc.now = func() time.Time { return now }
	return svc
}

func TestCompute_RevenueSumsItemPrices(t *testing.T) {
	storeID := uuid.New()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	orderRepo := &mockOrderRepo{}
	productRepo := &mockProductRepo{}
	orderRepo.Test(t)
	productRepo.Test(t)

	// Two paid orders worth $50 total. Unpaid orders never reach this
	// code path; ListPaidByStore filters them in SQL.
	paid := []*models.Order{
		paidOrder(storeID, now, 19.99, 10.01),
		paidOrder(storeID, now.AddDate(0, 0, -2), 20.00),
	}
	orderRepo.On("ListPaidByStore", mock.Anything, storeID).Return(paid, nil)
	productRepo.On("CountInStock", mock.Anything, storeID).Return(7, nil)

	svc := newTestService(orderRepo, productRepo, now)
	metrics, err := svc.Compute(context.Background(), storeID)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, metrics.TotalRevenue, 0.001)
	assert.Equal(t, 2, metrics.SalesCount)
	assert.Equal(t, 7, metrics.StockCount)
}

func TestCompute_SevenDayGraphBucketsByCalendarDay(t *testing.T) {
	storeID := uuid.New()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	orderRepo := &mockOrderRepo{}
	productRepo := &mockProductRepo{}
	orderRepo.Test(t)
	productRepo.Test(t)

	paid := []*models.Order{
		paidOrder(storeID, now, 30.00),
		paidOrder(storeID, now.AddDate(0, 0, -2), 12.50),
		paidOrder(storeID, now.AddDate(0, 0, -2), 7.50),
		// Outside the seven day window: contributes to totals but not
		// to any graph bucket.
		paidOrder(storeID, now.AddDate(0, 0, -10), 99.99),
	}
	orderRepo.On("ListPaidByStore", mock.Anything, storeID).Return(paid, nil)
	productRepo.On("CountInStock", mock.Anything, storeID).Return(0, nil)

	svc := newTestService(orderRepo, productRepo, now)
	metrics, err := svc.Compute(context.Background(), storeID)
	require.NoError(t, err)

	require.Len(t, metrics.GraphRevenue, 7)
	assert.Equal(t, "2026-03-04", metrics.GraphRevenue[0].Date)
	assert.Equal(t, "2026-03-10", metrics.GraphRevenue[6].Date)

	byDate := map[string]float64{}
	for _, bucket := range metrics.GraphRevenue {
		byDate[bucket.Date] = bucket.Revenue
	}
	assert.InDelta(t, 30.00, byDate["2026-03-10"], 0.001)
	assert.InDelta(t, 20.00, byDate["2026-03-08"], 0.001)
	assert.InDelta(t, 0.0, byDate["2026-03-09"], 0.001)

	assert.InDelta(t, 149.99, metrics.TotalRevenue, 0.001)
}

func TestMetrics_ServesFromCacheOnSecondCall(t *testing.T) {
	storeID := uuid.New()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	orderRepo := &mockOrderRepo{}
	productRepo := &mockProductRepo{}
	orderRepo.Test(t)
	productRepo.Test(t)

	orderRepo.On("ListPaidByStore", mock.Anything, storeID).Return([]*models.Order{}, nil).Once()
	productRepo.On("CountInStock", mock.Anything, storeID).Return(3, nil).Once()

	svc := newTestService(orderRepo, productRepo, now)

	first, err := svc.Metrics(context.Background(), storeID)
	require.NoError(t, err)
	second, err := svc.Metrics(context.Background(), storeID)
	require.NoError(t, err)

	assert.Equal(t, first.StockCount, second.StockCount)
	orderRepo.AssertNumberOfCalls(t, "ListPaidByStore", 1)
}
