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

type SiteConfigRepository struct {
	db *sql.DB
}

func NewSiteConfigRepository(db *sql.DB) repository.SiteConfigRepository {
	return &SiteConfigRepository{db: db}
}

func (r *SiteConfigRepository) Get(ctx context.Context, key string) (*domain.SiteConfig, error) {
	var cfg domain.SiteConfig
	err := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM site_configs WHERE key = ?`, key).
		Scan(&cfg.Key, &cfg.Value, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("site config %s: %w", key, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan site config: %w", err)
	}
	return &cfg, nil
}

func (r *SiteConfigRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO site_configs (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert site config: %w", err)
	}
	return nil
}
