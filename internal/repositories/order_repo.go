package repositories

import (
	"context"
	"time"

	"storeadmin/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order, productIDs []uuid.UUID) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Order, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Order, error)
	ListPaidByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (int64, error)
	CountStaleUnpaid(ctx context.Context, olderThan time.Time) (int, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

// CreateWithItems writes the order and one item row per product id in a
// single transaction.
func (r *orderRepo) CreateWithItems(ctx context.Context, order *models.Order, productIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (id, store_id, is_paid, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, query, order.ID, order.StoreID, order.IsPaid, order.Phone, order.Address); err != nil {
		return err
	}

	for _, productID := range productIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id) VALUES ($1, $2, $3)`,
			uuid.New(), order.ID, productID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, store_id, is_paid, phone, address, created_at, updated_at
		FROM orders
		WHERE store_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, storeID, id).Scan(&order.ID, &order.StoreID, &order.IsPaid,
		&order.Phone, &order.Address, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Order, error) {
	return r.list(ctx, storeID, false)
}

// ListPaidByStore returns only paid orders; unpaid orders are invisible to
// dashboard aggregates.
func (r *orderRepo) ListPaidByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Order, error) {
	return r.list(ctx, storeID, true)
}

func (r *orderRepo) list(ctx context.Context, storeID uuid.UUID, paidOnly bool) ([]*models.Order, error) {
	query := `
		SELECT id, store_id, is_paid, phone, address, created_at, updated_at
		FROM orders
		WHERE store_id = $1
	`
	if paidOnly {
		query += " AND is_paid = TRUE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.StoreID, &order.IsPaid,
			&order.Phone, &order.Address, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// MarkPaid flips the paid flag for an order. The webhook carries only the
// order id, so the lookup is not store scoped. Repeated calls are no-ops
// beyond the flag write.
func (r *orderRepo) MarkPaid(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE orders SET is_paid = TRUE, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountStaleUnpaid reports unpaid orders older than the cutoff. Used by the
// background report job; nothing deletes these rows.
func (r *orderRepo) CountStaleUnpaid(ctx context.Context, olderThan time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM orders WHERE is_paid = FALSE AND created_at < $1`
	err := r.db.QueryRow(ctx, query, olderThan).Scan(&count)
	return count, err
}

func (r *orderRepo) loadItems(ctx context.Context, order *models.Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, p.price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
	`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.ProductPrice); err != nil {
			return err
		}
		order.OrderItems = append(order.OrderItems, item)
	}
	return rows.Err()
}
