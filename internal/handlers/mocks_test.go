package handlers

import (
	"context"
	"io"
	"time"

	"storeadmin/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBillboardRepository struct {
	mock.Mock
}

func (m *MockBillboardRepository) Create(ctx context.Context, billboard *models.Billboard) error {
	args := m.Called(ctx, billboard)
	return args.Error(0)
}

func (m *MockBillboardRepository) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Billboard, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Billboard), args.Error(1)
}

func (m *MockBillboardRepository) Update(ctx context.Context, billboard *models.Billboard) error {
	args := m.Called(ctx, billboard)
	return args.Error(0)
}

func (m *MockBillboardRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func (m *MockBillboardRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Billboard, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Billboard), args.Error(1)
}

type MockOwnershipService struct {
	mock.Mock
}

func (m *MockOwnershipService) RequireStoreOwner(ctx context.Context, userID string, storeID uuid.UUID) (*models.Store, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithItems(ctx context.Context, order *models.Order, productIDs []uuid.UUID) error {
	args := m.Called(ctx, order, productIDs)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListPaidByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountStaleUnpaid(ctx context.Context, olderThan time.Time) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product, sizeIDs, colorIDs []uuid.UUID, imageURLs []string) error {
	args := m.Called(ctx, product, sizeIDs, colorIDs, imageURLs)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product, sizeIDs, colorIDs []uuid.UUID, imageURLs []string) error {
	args := m.Called(ctx, product, sizeIDs, colorIDs, imageURLs)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func (m *MockProductRepository) ListByStore(ctx context.Context, storeID uuid.UUID, filter *models.ProductFilter) ([]*models.Product, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) CountInStock(ctx context.Context, storeID uuid.UUID) (int, error) {
	args := m.Called(ctx, storeID)
	return args.Int(0), args.Error(1)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadStoreImage(ctx context.Context, storeID uuid.UUID, filename string, reader io.Reader, size int64) (string, error) {
	args := m.Called(ctx, storeID, filename, reader, size)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) DeleteImage(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func (m *MockStorageService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
