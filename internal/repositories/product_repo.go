package repositories

import (
	"context"
	"fmt"

	"storeadmin/internal/models"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product, sizeIDs, colorIDs []uuid.UUID, imageURLs []string) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product, sizeIDs, colorIDs []uuid.UUID, imageURLs []string) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID, filter *models.ProductFilter) ([]*models.Product, error)
	CountInStock(ctx context.Context, storeID uuid.UUID) (int, error)
}

type productRepo struct {
	db DB
}

func NewProductRepo(db DB) ProductRepository {
	return &productRepo{db: db}
}

// Create writes the product row, its size/color join rows and its image
// rows in one transaction, so a product never appears without relations.
func (r *productRepo) Create(ctx context.Context, product *models.Product, sizeIDs, colorIDs []uuid.UUID, imageURLs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (id, store_id, category_id, name, price, is_featured, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, query, product.ID, product.StoreID, product.CategoryID,
		product.Name, product.Price, product.IsFeatured, product.IsArchived); err != nil {
		return err
	}

	for _, sizeID := range sizeIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_sizes (product_id, size_id) VALUES ($1, $2)`,
			product.ID, sizeID); err != nil {
			return err
		}
	}
	for _, colorID := range colorIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_colors (product_id, color_id) VALUES ($1, $2)`,
			product.ID, colorID); err != nil {
			return err
		}
	}
	for _, url := range imageURLs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_images (id, product_id, url, created_at) VALUES ($1, $2, $3, NOW())`,
			uuid.New(), product.ID, url); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *productRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, store_id, category_id, name, price, is_featured, is_archived, created_at, updated_at
		FROM products
		WHERE store_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, storeID, id).Scan(&product.ID, &product.StoreID, &product.CategoryID,
		&product.Name, &product.Price, &product.IsFeatured, &product.IsArchived, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces the product row and rewrites its joins and images in one
// transaction, mirroring the replace-all semantics of the product form.
func (r *productRepo) Update(ctx context.Context, product *models.Product, sizeIDs, colorIDs []uuid.UUID, imageURLs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE products
		SET category_id = $1, name = $2, price = $3, is_featured = $4, is_archived = $5, updated_at = NOW()
		WHERE store_id = $6 AND id = $7
	`
	if _, err := tx.Exec(ctx, query, product.CategoryID, product.Name, product.Price,
		product.IsFeatured, product.IsArchived, product.StoreID, product.ID); err != nil {
		return err
	}

	for _, table := range []string{"product_sizes", "product_colors", "product_images"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE product_id = $1`, table), product.ID); err != nil {
			return err
		}
	}

	for _, sizeID := range sizeIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_sizes (product_id, size_id) VALUES ($1, $2)`,
			product.ID, sizeID); err != nil {
			return err
		}
	}
	for _, colorID := range colorIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_colors (product_id, color_id) VALUES ($1, $2)`,
			product.ID, colorID); err != nil {
			return err
		}
	}
	for _, url := range imageURLs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_images (id, product_id, url, created_at) VALUES ($1, $2, $3, NOW())`,
			uuid.New(), product.ID, url); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *productRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"product_sizes", "product_colors", "product_images"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE product_id = $1`, table), id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM products WHERE store_id = $1 AND id = $2`, storeID, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *productRepo) ListByStore(ctx context.Context, storeID uuid.UUID, filter *models.ProductFilter) ([]*models.Product, error) {
	if filter == nil {
		filter = &models.ProductFilter{}
	}

	query := `
		SELECT id, store_id, category_id, name, price, is_featured, is_archived, created_at, updated_at
		FROM products
		WHERE store_id = $1
	`
	args := []any{storeID}
	argPos := 2

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argPos)
		args = append(args, *filter.CategoryID)
		argPos++
	}
	if filter.IsFeatured != nil {
		query += fmt.Sprintf(" AND is_featured = $%d", argPos)
		args = append(args, *filter.IsFeatured)
		argPos++
	}
	if filter.IsArchived != nil {
		query += fmt.Sprintf(" AND is_archived = $%d", argPos)
		args = append(args, *filter.IsArchived)
		argPos++
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.StoreID, &product.CategoryID, &product.Name, &product.Price,
			&product.IsFeatured, &product.IsArchived, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, product := range products {
		if err := r.loadRelations(ctx, product); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *productRepo) CountInStock(ctx context.Context, storeID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM products WHERE store_id = $1 AND is_archived = FALSE`
	err := r.db.QueryRow(ctx, query, storeID).Scan(&count)
	return count, err
}

func (r *productRepo) loadRelations(ctx context.Context, product *models.Product) error {
	category := &models.Category{}
	err := r.db.QueryRow(ctx,
		`SELECT id, store_id, name, billboard_id, created_at, updated_at FROM categories WHERE id = $1`,
		product.CategoryID).Scan(&category.ID, &category.StoreID, &category.Name,
		&category.BillboardID, &category.CreatedAt, &category.UpdatedAt)
	if err == nil {
		product.Category = category
	}

	sizeRows, err := r.db.Query(ctx, `
		SELECT s.id, s.store_id, s.name, s.value, s.created_at, s.updated_at
		FROM sizes s
		JOIN product_sizes ps ON ps.size_id = s.id
		WHERE ps.product_id = $1
	`, product.ID)
	if err != nil {
		return err
	}
	for sizeRows.Next() {
		size := &models.Size{}
		if err := sizeRows.Scan(&size.ID, &size.StoreID, &size.Name, &size.Value, &size.CreatedAt, &size.UpdatedAt); err != nil {
			sizeRows.Close()
			return err
		}
		product.Sizes = append(product.Sizes, size)
	}
	sizeRows.Close()

	colorRows, err := r.db.Query(ctx, `
		SELECT c.id, c.store_id, c.name, c.value, c.created_at, c.updated_at
		FROM colors c
		JOIN product_colors pc ON pc.color_id = c.id
		WHERE pc.product_id = $1
	`, product.ID)
	if err != nil {
		return err
	}
	for colorRows.Next() {
		color := &models.Color{}
		if err := colorRows.Scan(&color.ID, &color.StoreID, &color.Name, &color.Value, &color.CreatedAt, &color.UpdatedAt); err != nil {
			colorRows.Close()
			return err
		}
		product.Colors = append(product.Colors, color)
	}
	colorRows.Close()

	imageRows, err := r.db.Query(ctx,
		`SELECT id, product_id, url, created_at FROM product_images WHERE product_id = $1`, product.ID)
	if err != nil {
		return err
	}
	for imageRows.Next() {
		image := &models.ProductImage{}
		if err := imageRows.Scan(&image.ID, &image.ProductID, &image.URL, &image.CreatedAt); err != nil {
			imageRows.Close()
			return err
		}
		product.Images = append(product.Images, image)
	}
	imageRows.Close()

	return nil
}
