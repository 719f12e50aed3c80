package repositories

import (
	"context"

	"storeadmin/internal/models"

	"github.com/google/uuid"
)

type SizeRepository interface {
	Create(ctx context.Context, size *models.Size) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Size, error)
	Update(ctx context.Context, size *models.Size) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Size, error)
}

type sizeRepo struct {
	db DB
}

func NewSizeRepo(db DB) SizeRepository {
	return &sizeRepo{db: db}
}

func (r *sizeRepo) Create(ctx context.Context, size *models.Size) error {
	query := `
		INSERT INTO sizes (id, store_id, name, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, size.ID, size.StoreID, size.Name, size.Value)
	return err
}

func (r *sizeRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Size, error) {
	size := &models.Size{}
	query := `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM sizes
		WHERE store_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, storeID, id).Scan(&size.ID, &size.StoreID, &size.Name,
		&size.Value, &size.CreatedAt, &size.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return size, nil
}

func (r *sizeRepo) Update(ctx context.Context, size *models.Size) error {
	query := `
		UPDATE sizes
		SET name = $1, value = $2, updated_at = NOW()
		WHERE store_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, size.Name, size.Value, size.StoreID, size.ID)
	return err
}

func (r *sizeRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	query := `DELETE FROM sizes WHERE store_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, storeID, id)
	return err
}

func (r *sizeRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Size, error) {
	query := `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM sizes
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sizes []*models.Size
	for rows.Next() {
		size := &models.Size{}
		if err := rows.Scan(&size.ID, &size.StoreID, &size.Name,
			&size.Value, &size.CreatedAt, &size.UpdatedAt); err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
