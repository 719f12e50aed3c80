package repositories

import (
	"context"

	"storeadmin/internal/models"

	"github.com/google/uuid"
)

type ColorRepository interface {
	Create(ctx context.Context, color *models.Color) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Color, error)
	Update(ctx context.Context, color *models.Color) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Color, error)
}

type colorRepo struct {
	db DB
}

func NewColorRepo(db DB) ColorRepository {
	return &colorRepo{db: db}
}

func (r *colorRepo) Create(ctx context.Context, color *models.Color) error {
	query := `
		INSERT INTO colors (id, store_id, name, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, color.ID, color.StoreID, color.Name, color.Value)
	return err
}

func (r *colorRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Color, error) {
	color := &models.Color{}
	query := `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM colors
		WHERE store_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, storeID, id).Scan(&color.ID, &color.StoreID, &color.Name,
		&color.Value, &color.CreatedAt, &color.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return color, nil
}

func (r *colorRepo) Update(ctx context.Context, color *models.Color) error {
	query := `
		UPDATE colors
		SET name = $1, value = $2, updated_at = NOW()
		WHERE store_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, color.Name, color.Value, color.StoreID, color.ID)
	return err
}

func (r *colorRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	query := `DELETE FROM colors WHERE store_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, storeID, id)
	return err
}

func (r *colorRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Color, error) {
	query := `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM colors
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colors []*models.Color
	for rows.Next() {
		color := &models.Color{}
		if err := rows.Scan(&color.ID, &color.StoreID, &color.Name,
			&color.Value, &color.CreatedAt, &color.UpdatedAt); err != nil {
			return nil, err
		}
		colors = append(colors, color)
	}
	return colors, nil
}
