package repositories

import (
	"context"

	"storeadmin/internal/models"

	"github.com/google/uuid"
)

type BillboardRepository interface {
	Create(ctx context.Context, billboard *models.Billboard) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Billboard, error)
	Update(ctx context.Context, billboard *models.Billboard) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Billboard, error)
}

type billboardRepo struct {
	db DB
}

func NewBillboardRepo(db DB) BillboardRepository {
	return &billboardRepo{db: db}
}

func (r *billboardRepo) Create(ctx context.Context, billboard *models.Billboard) error {
	query := `
		INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, billboard.ID, billboard.StoreID, billboard.Label, billboard.ImageURL)
	return err
}

func (r *billboardRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Billboard, error) {
	billboard := &models.Billboard{}
	query := `
		SELECT id, store_id, label, image_url, created_at, updated_at
		FROM billboards
		WHERE store_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, storeID, id).Scan(&billboard.ID, &billboard.StoreID, &billboard.Label,
		&billboard.ImageURL, &billboard.CreatedAt, &billboard.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return billboard, nil
}

func (r *billboardRepo) Update(ctx context.Context, billboard *models.Billboard) error {
	query := `
		UPDATE billboards
		SET label = $1, image_url = $2, updated_at = NOW()
		WHERE store_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, billboard.Label, billboard.ImageURL, billboard.StoreID, billboard.ID)
	return err
}

func (r *billboardRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	query := `DELETE FROM billboards WHERE store_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, storeID, id)
	return err
}

func (r *billboardRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*models.Billboard, error) {
	query := `
		SELECT id, store_id, label, image_url, created_at, updated_at
		FROM billboards
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var billboards []*models.Billboard
	for rows.Next() {
		billboard := &models.Billboard{}
		if err := rows.Scan(&billboard.ID, &billboard.StoreID, &billboard.Label,
			&billboard.ImageURL, &billboard.CreatedAt, &billboard.UpdatedAt); err != nil {
			return nil, err
		}
		billboards = append(billboards, billboard)
	}
	return billboards, nil
}
