package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
)

const selectProduct = `
SELECT products.id, products.creator_id, products.title, products.url, products.initial_prompt_log, products.dev_obsession,
	products.status, products.sealed_at, products.created_at, products.updated_at, users.user_hash
FROM products
JOIN users ON products.creator_id = users.id`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (int64, error) {
	now := time.Now().UTC()
	product.SealedAt = now
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = domain.ProductStatusPublished
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO products (creator_id, title, url, initial_prompt_log, dev_obsession, status, sealed_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.CreatorID,
		product.Title,
		nullString(product.URL),
		product.InitialPromptLog,
		nullString(product.DevObsession),
		string(product.Status),
		product.SealedAt,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product last insert id: %w", err)
	}
	product.ID = id
	return id, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, selectProduct+`
WHERE products.id = ?`, id)
	return scanProduct(row)
}

func (r *ProductRepository) ListByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProduct+`
WHERE products.status = ?
ORDER BY products.created_at DESC, products.id DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Update never touches initial_prompt_log or sealed_at.
func (r *ProductRepository) Update(ctx context.Context, id int64, edit domain.ProductEdit) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET title = ?, url = ?, dev_obsession = ?, updated_at = ?
WHERE id = ?`,
		edit.Title,
		nullString(edit.URL),
		nullString(edit.DevObsession),
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res, "product")
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res, "product")
}

func (r *ProductRepository) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT products.title, products.created_at, users.user_hash
FROM products
JOIN users ON products.creator_id = users.id
ORDER BY products.created_at DESC, products.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent products: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows, domain.ActivityProduct)
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "products")
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p            domain.Product
		url          sql.NullString
		devObsession sql.NullString
		status       string
	)
	if err := row.Scan(
		&p.ID,
		&p.CreatorID,
		&p.Title,
		&url,
		&p.InitialPromptLog,
		&devObsession,
		&status,
		&p.SealedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CreatorUserHash,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.URL = stringPtr(url)
	p.DevObsession = stringPtr(devObsession)
	p.Status = domain.ProductStatus(status)
	return &p, nil
}
