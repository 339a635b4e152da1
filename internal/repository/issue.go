package repository

import (
	"context"

	"komarabo/internal/domain"
)

// IssueRepository exposes persistence operations for issues.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Issue, error)
	List(ctx context.Context, filter domain.IssueFilter, userHash string) ([]domain.Issue, error)
	// UpdateStatus moves an issue from one status to another in a single statement.
	// A non-nil developerID is bound at the same time; moving to open clears the developer.
	// It returns ErrNotFound when the issue does not exist or is no longer in status from.
	UpdateStatus(ctx context.Context, id int64, from, to domain.IssueStatus, developerID *int64) error
	Unassign(ctx context.Context, id int64) error
	// DeleteOpen removes an unclaimed open issue together with its comments.
	DeleteOpen(ctx context.Context, id int64) error
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
	Count(ctx context.Context) (int64, error)
}

// CommentRepository manages comments attached to issues.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	ListByIssue(ctx context.Context, issueID int64) ([]domain.Comment, error)
	Count(ctx context.Context) (int64, error)
}
