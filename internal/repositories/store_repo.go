package repositories

import (
	"context"

	"storeadmin/internal/models"

	"github.com/google/uuid"
)

type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	GetByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*models.Store, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Store, error)
	ListAll(ctx context.Context) ([]*models.Store, error)
	UpdateName(ctx context.Context, id uuid.UUID, userID, name string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) (int64, error)
}

type storeRepo struct {
	db DB
}

func NewStoreRepo(db DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) Create(ctx context.Context, store *models.Store) error {
	query := `
		INSERT INTO stores (id, name, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, store.ID, store.Name, store.UserID)
	return err
}

func (r *storeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store := &models.Store{}
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM stores
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&store.ID, &store.Name, &store.UserID, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// GetByIDAndUser is the ownership gate query: the row must match both the
// store id and the caller's identity.
func (r *storeRepo) GetByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*models.Store, error) {
	store := &models.Store{}
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM stores
		WHERE id = $1 AND user_id = $2
	`
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&store.ID, &store.Name, &store.UserID, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (r *storeRepo) ListByUser(ctx context.Context, userID string) ([]*models.Store, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM stores
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*models.Store
	for rows.Next() {
		store := &models.Store{}
		if err := rows.Scan(&store.ID, &store.Name, &store.UserID, &store.CreatedAt, &store.UpdatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, nil
}

func (r *storeRepo) ListAll(ctx context.Context) ([]*models.Store, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM stores
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*models.Store
	for rows.Next() {
		store := &models.Store{}
		if err := rows.Scan(&store.ID, &store.Name, &store.UserID, &store.CreatedAt, &store.UpdatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, nil
}

// UpdateName renames a store. The WHERE clause carries the ownership check;
// the affected-row count tells the handler whether anything matched.
func (r *storeRepo) UpdateName(ctx context.Context, id uuid.UUID, userID, name string) (int64, error) {
	query := `
		UPDATE stores
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`
	tag, err := r.db.Exec(ctx, query, name, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *storeRepo) Delete(ctx context.Context, id uuid.UUID, userID string) (int64, error) {
	query := `DELETE FROM stores WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
