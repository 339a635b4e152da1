package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
)

// IssueService covers the issue lifecycle and its comments.
type IssueService interface {
	Post(ctx context.Context, actorHash, title, description string) (*domain.Issue, error)
	List(ctx context.Context, filter domain.IssueFilter, userHash string) ([]domain.Issue, error)
	Detail(ctx context.Context, id int64) (*domain.Issue, []domain.Comment, error)
	UpdateStatus(ctx context.Context, id int64, status, actorHash string) error
	Unassign(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64, actorHash string) error
	Comment(ctx context.Context, issueID int64, actorHash, content string) (*domain.Comment, error)
}

type issueService struct {
	users    UserService
	issues   repository.IssueRepository
	comments repository.CommentRepository
}

func NewIssueService(users UserService, issues repository.IssueRepository, comments repository.CommentRepository) IssueService {
	return &issueService{
		users:    users,
		issues:   issues,
		comments: comments,
	}
}

func (s *issueService) Post(ctx context.Context, actorHash, title, description string) (*domain.Issue, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	actor, err := s.users.Resolve(ctx, actorHash)
	if err != nil {
		return nil, err
	}

	issue := &domain.Issue{
		RequesterID:       actor.ID,
		Title:             title,
		Description:       description,
		Status:            domain.IssueStatusOpen,
		RequesterUserHash: actor.UserHash,
	}
	if _, err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) List(ctx context.Context, filter domain.IssueFilter, userHash string) ([]domain.Issue, error) {
	if filter != domain.IssueFilterMine {
		filter = domain.IssueFilterAll
	}
	return s.issues.List(ctx, filter, strings.TrimSpace(userHash))
}

func (s *issueService) Detail(ctx context.Context, id int64) (*domain.Issue, []domain.Comment, error) {
	issue, err := s.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.comments.ListByIssue(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return issue, comments, nil
}

func (s *issueService) UpdateStatus(ctx context.Context, id int64, status, actorHash string) error {
	to, err := domain.ParseIssueStatus(status)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	issue, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !issue.Status.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, issue.Status, to)
	}

	var developerID *int64
	if to == domain.IssueStatusProgress {
		actor, err := s.users.Resolve(ctx, actorHash)
		if err != nil {
			return err
		}
		developerID = &actor.ID
	}

	if err := s.issues.UpdateStatus(ctx, id, issue.Status, to, developerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// changed or removed since we read it
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, issue.Status, to)
		}
		return err
	}
	return nil
}

func (s *issueService) Unassign(ctx context.Context, id int64) error {
	if err := s.issues.Unassign(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIssueNotFound
		}
		return err
	}
	return nil
}

func (s *issueService) Delete(ctx context.Context, id int64, actorHash string) error {
	issue, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	actor, err := s.users.Resolve(ctx, actorHash)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}
	if err := Authorize(actor, CapDeleteIssue, issue.RequesterID); err != nil {
		return err
	}
	if !issue.Deletable() {
		return ErrIssueInProgress
	}

	if err := s.issues.DeleteOpen(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIssueInProgress
		}
		return err
	}
	return nil
}

func (s *issueService) Comment(ctx context.Context, issueID int64, actorHash, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	actor, err := s.users.Resolve(ctx, actorHash)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		IssueID:  issueID,
		UserID:   actor.ID,
		Content:  content,
		UserHash: actor.UserHash,
	}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *issueService) get(ctx context.Context, id int64) (*domain.Issue, error) {
	issue, err := s.issues.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return issue, nil
}
