package service

import (
	"context"
	"errors"
	"slices"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
)

const (
	recentPerSource = 5
	recentTotal     = 10
)

// AdminService backs the admin dashboard. Every call re-checks the admin flag.
type AdminService interface {
	IsAdmin(ctx context.Context, userHash string) (bool, error)
	Stats(ctx context.Context, actorHash string) (*domain.Stats, error)
	Users(ctx context.Context, actorHash string) ([]domain.User, error)
	RecentActivity(ctx context.Context, actorHash string) ([]domain.Activity, error)
	UpdateBasePrompt(ctx context.Context, actorHash, prompt string) error
}

type adminService struct {
	users    UserService
	userRepo repository.UserRepository
	issues   repository.IssueRepository
	comments repository.CommentRepository
	products repository.ProductRepository
	configs  repository.SiteConfigRepository
}

func NewAdminService(
	users UserService,
	userRepo repository.UserRepository,
	issues repository.IssueRepository,
	comments repository.CommentRepository,
	products repository.ProductRepository,
	configs repository.SiteConfigRepository,
) AdminService {
	return &adminService{
		users:    users,
		userRepo: userRepo,
		issues:   issues,
		comments: comments,
		products: products,
		configs:  configs,
	}
}

func (s *adminService) IsAdmin(ctx context.Context, userHash string) (bool, error) {
	user, err := s.users.Resolve(ctx, userHash)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *adminService) requireAdmin(ctx context.Context, actorHash string) error {
	actor, err := s.users.Resolve(ctx, actorHash)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}
	return Authorize(actor, CapAdmin, 0)
}

func (s *adminService) Stats(ctx context.Context, actorHash string) (*domain.Stats, error) {
	if err := s.requireAdmin(ctx, actorHash); err != nil {
		return nil, err
	}

	var (
		stats domain.Stats
		err   error
	)
	if stats.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Issues, err = s.issues.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Products, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.comments.Count(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *adminService) Users(ctx context.Context, actorHash string) ([]domain.User, error) {
	if err := s.requireAdmin(ctx, actorHash); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// RecentActivity merges the newest issues and products. Each source is capped
// before the merge, so the feed is a glance rather than an exact top ten.
func (s *adminService) RecentActivity(ctx context.Context, actorHash string) ([]domain.Activity, error) {
	if err := s.requireAdmin(ctx, actorHash); err != nil {
		return nil, err
	}

	issues, err := s.issues.Recent(ctx, recentPerSource)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Recent(ctx, recentPerSource)
	if err != nil {
		return nil, err
	}

	return mergeActivities(issues, products), nil
}

func mergeActivities(sources ...[]domain.Activity) []domain.Activity {
	merged := []domain.Activity{}
	for _, src := range sources {
		merged = append(merged, src...)
	}
	slices.SortStableFunc(merged, func(a, b domain.Activity) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(merged) > recentTotal {
		merged = merged[:recentTotal]
	}
	return merged
}

func (s *adminService) UpdateBasePrompt(ctx context.Context, actorHash, prompt string) error {
	if err := s.requireAdmin(ctx, actorHash); err != nil {
		return err
	}
	return s.configs.Upsert(ctx, domain.BasePromptKey, prompt)
}
