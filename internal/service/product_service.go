package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
	"komarabo/internal/storage"
)

// ProductInput is what a creator submits when posting a product.
type ProductInput struct {
	Title            string
	URL              string
	InitialPromptLog string
	DevObsession     string
}

// ProductService manages wakuwaku products and the shared base prompt.
type ProductService interface {
	BasePrompt(ctx context.Context) (string, error)
	ListPublished(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, actorHash string, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, actorHash, title, url, devObsession string) error
	Delete(ctx context.Context, id int64, actorHash string) error
}

type productService struct {
	users    UserService
	products repository.ProductRepository
	configs  repository.SiteConfigRepository
	archive  storage.Archiver
	logger   *logrus.Logger
}

// NewProductService wires the product service. archive may be nil when no bucket is configured.
func NewProductService(users UserService, products repository.ProductRepository, configs repository.SiteConfigRepository, archive storage.Archiver, logger *logrus.Logger) ProductService {
	if logger == nil {
		logger = logrus.New()
	}
	return &productService{
		users:    users,
		products: products,
		configs:  configs,
		archive:  archive,
		logger:   logger,
	}
}

func (s *productService) BasePrompt(ctx context.Context) (string, error) {
	cfg, err := s.configs.Get(ctx, domain.BasePromptKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.DefaultBasePrompt, nil
		}
		return "", err
	}
	if cfg.Value == "" {
		return domain.DefaultBasePrompt, nil
	}
	return cfg.Value, nil
}

func (s *productService) ListPublished(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListByStatus(ctx, domain.ProductStatusPublished)
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, actorHash string, in ProductInput) (*domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.InitialPromptLog) == "" {
		return nil, fmt.Errorf("%w: title and initial_prompt_log are required", ErrInvalidInput)
	}

	actor, err := s.users.Resolve(ctx, actorHash)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		CreatorID:        actor.ID,
		Title:            title,
		URL:              optional(in.URL),
		InitialPromptLog: in.InitialPromptLog,
		DevObsession:     optional(in.DevObsession),
		Status:           domain.ProductStatusPublished,
		CreatorUserHash:  actor.UserHash,
	}
	if _, err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	if s.archive != nil {
		location, err := s.archive.ArchiveSealedLog(ctx, storage.SealedLog{
			ProductID: product.ID,
			UserHash:  actor.UserHash,
			SealedAt:  product.SealedAt,
			Body:      product.InitialPromptLog,
		})
		if err != nil {
			s.logger.WithError(err).WithField("product_id", product.ID).Warn("archive sealed prompt log")
		} else {
			s.logger.WithField("product_id", product.ID).Infof("sealed prompt log archived to %s", location)
		}
	}

	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, actorHash, title, url, devObsession string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if err := s.authorizeOwner(ctx, id, actorHash, CapEditProduct); err != nil {
		return err
	}

	err := s.products.Update(ctx, id, domain.ProductEdit{
		Title:        title,
		URL:          optional(url),
		DevObsession: optional(devObsession),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

func (s *productService) Delete(ctx context.Context, id int64, actorHash string) error {
	if err := s.authorizeOwner(ctx, id, actorHash, CapDeleteProduct); err != nil {
		return err
	}

	err := s.products.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

func (s *productService) authorizeOwner(ctx context.Context, id int64, actorHash string, cap Capability) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	actor, err := s.users.Resolve(ctx, actorHash)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}
	return Authorize(actor, cap, product.CreatorID)
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
