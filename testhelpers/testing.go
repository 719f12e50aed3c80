package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=storeadmin_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestStore creates a store owned by the given user
func SetupTestStore(t *testing.T, db *TestDB, userID string) uuid.UUID {
	t.Helper()

	storeID := uuid.New()
	query := `
		INSERT INTO stores (id, name, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, storeID, "Test Store", userID)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	return storeID
}

// SetupTestBillboard creates a billboard under a store
func SetupTestBillboard(t *testing.T, db *TestDB, storeID uuid.UUID) uuid.UUID {
	t.Helper()

	billboardID := uuid.New()
	query := `
		INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, billboardID, storeID, "Test Billboard", "https://img.example.com/test.jpg")
	if err != nil {
		t.Fatalf("Failed to create test billboard: %v", err)
	}

	return billboardID
}

// SetupTestCategory creates a category linked to a billboard
func SetupTestCategory(t *testing.T, db *TestDB, storeID, billboardID uuid.UUID) uuid.UUID {
	t.Helper()

	categoryID := uuid.New()
	query := `
		INSERT INTO categories (id, store_id, name, billboard_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, categoryID, storeID, "Test Category", billboardID)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return categoryID
}

// SetupTestProduct creates a product under a store and category
func SetupTestProduct(t *testing.T, db *TestDB, storeID, categoryID uuid.UUID, price float64) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	query := `
		INSERT INTO products (id, store_id, category_id, name, price, is_featured, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, FALSE, NOW(), NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, productID, storeID, categoryID, "Test Product", price)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return productID
}

// SetupTestPaidOrder creates a paid order holding the given products,
// backdated by age so date-bucketed aggregations can be exercised
func SetupTestPaidOrder(t *testing.T, db *TestDB, storeID uuid.UUID, productIDs []uuid.UUID, age time.Duration) uuid.UUID {
	t.Helper()

	orderID := uuid.New()
	createdAt := time.Now().Add(-age)
	orderQuery := `
		INSERT INTO orders (id, store_id, is_paid, phone, address, created_at, updated_at)
		VALUES ($1, $2, TRUE, $3, $4, $5, $5)
	`
	_, err := db.Pool.Exec(context.Background(), orderQuery, orderID, storeID, "+201234567890", "Test Address", createdAt)
	if err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id)
		VALUES ($1, $2, $3)
	`
	for _, productID := range productIDs {
		if _, err := db.Pool.Exec(context.Background(), itemQuery, uuid.New(), orderID, productID); err != nil {
			t.Fatalf("Failed to create test order item: %v", err)
		}
	}

	return orderID
}
