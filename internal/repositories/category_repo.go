package repositories

import (
	"context"

	"storeadmin/internal/models"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Category, error)
}

type categoryRepo struct {
	db DB
}

func NewCategoryRepo(db DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, store_id, name, billboard_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.StoreID, category.Name, category.BillboardID)
	return err
}

// GetByID loads a category together with its billboard for the nested
// responses the storefront expects.
func (r *categoryRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{Billboard: &models.Billboard{}}
	query := `
		SELECT c.id, c.store_id, c.name, c.billboard_id, c.created_at, c.updated_at,
		       b.id, b.store_id, b.label, b.image_url, b.created_at, b.updated_at
		FROM categories c
		JOIN billboards b ON b.id = c.billboard_id
		WHERE c.store_id = $1 AND c.id = $2
	`
	err := r.db.QueryRow(ctx, query, storeID, id).Scan(
		&category.ID, &category.StoreID, &category.Name, &category.BillboardID, &category.CreatedAt, &category.UpdatedAt,
		&category.Billboard.ID, &category.Billboard.StoreID, &category.Billboard.Label,
		&category.Billboard.ImageURL, &category.Billboard.CreatedAt, &category.Billboard.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, billboard_id = $2, updated_at = NOW()
		WHERE store_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, category.Name, category.BillboardID, category.StoreID, category.ID)
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE store_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, storeID, id)
	return err
}

func (r *categoryRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Category, error) {
	query := `
		SELECT id, store_id, name, billboard_id, created_at, updated_at
		FROM categories
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.StoreID, &category.Name,
			&category.BillboardID, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}
