package repository

import (
	"context"

	"komarabo/internal/domain"
)

// ProductRepository exposes persistence operations for wakuwaku products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	ListByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error)
	Update(ctx context.Context, id int64, edit domain.ProductEdit) error
	Delete(ctx context.Context, id int64) error
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
	Count(ctx context.Context) (int64, error)
}

// SiteConfigRepository stores shared key/value settings.
type SiteConfigRepository interface {
	Get(ctx context.Context, key string) (*domain.SiteConfig, error)
	Upsert(ctx context.Context, key, value string) error
}
