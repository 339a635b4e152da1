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

const selectIssue = `
SELECT issues.id, issues.requester_id, issues.developer_id, issues.title, issues.description, issues.status, issues.created_at,
	requester.user_hash, developer.user_hash
FROM issues
JOIN users AS requester ON issues.requester_id = requester.id
LEFT JOIN users AS developer ON issues.developer_id = developer.id`

type IssueRepository struct {
	db *sql.DB
}

func NewIssueRepository(db *sql.DB) repository.IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue) (int64, error) {
	issue.CreatedAt = time.Now().UTC()
	if issue.Status == "" {
		issue.Status = domain.IssueStatusOpen
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO issues (requester_id, title, description, status, created_at)
VALUES (?, ?, ?, ?, ?)`,
		issue.RequesterID,
		issue.Title,
		issue.Description,
		string(issue.Status),
		issue.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert issue: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("issue last insert id: %w", err)
	}
	issue.ID = id
	return id, nil
}

func (r *IssueRepository) Get(ctx context.Context, id int64) (*domain.Issue, error) {
	row := r.db.QueryRowContext(ctx, selectIssue+`
WHERE issues.id = ?`, id)
	return scanIssue(row)
}

func (r *IssueRepository) List(ctx context.Context, filter domain.IssueFilter, userHash string) ([]domain.Issue, error) {
	query := selectIssue
	var args []any
	if filter == domain.IssueFilterMine && userHash != "" {
		query += `
WHERE requester.user_hash = ? OR developer.user_hash = ?`
		args = append(args, userHash, userHash)
	}
	query += `
ORDER BY issues.created_at DESC, issues.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *issue)
	}
	return issues, rows.Err()
}

func (r *IssueRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.IssueStatus, developerID *int64) error {
	var (
		res sql.Result
		err error
	)
	switch {
	case developerID != nil:
		res, err = r.db.ExecContext(ctx, `UPDATE issues SET status = ?, developer_id = ? WHERE id = ? AND status = ?`, string(to), *developerID, id, string(from))
	case to == domain.IssueStatusOpen:
		res, err = r.db.ExecContext(ctx, `UPDATE issues SET status = ?, developer_id = NULL WHERE id = ? AND status = ?`, string(to), id, string(from))
	default:
		res, err = r.db.ExecContext(ctx, `UPDATE issues SET status = ? WHERE id = ? AND status = ?`, string(to), id, string(from))
	}
	if err != nil {
		return fmt.Errorf("update issue status: %w", err)
	}
	return requireAffected(res, "issue")
}

func (r *IssueRepository) Unassign(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE issues SET status = ?, developer_id = NULL WHERE id = ?`, string(domain.IssueStatusOpen), id)
	if err != nil {
		return fmt.Errorf("unassign issue: %w", err)
	}
	return requireAffected(res, "issue")
}

func (r *IssueRepository) DeleteOpen(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM issues WHERE id = ? AND status = ? AND developer_id IS NULL`, id, string(domain.IssueStatusOpen))
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	if err := requireAffected(res, "open issue"); err != nil {
		return err
	}

	// comments cascade through the foreign key; the explicit delete keeps it true without the pragma
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE issue_id = ?`, id); err != nil {
		return fmt.Errorf("delete issue comments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit issue delete: %w", err)
	}
	return nil
}

func (r *IssueRepository) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT issues.title, issues.created_at, users.user_hash
FROM issues
JOIN users ON issues.requester_id = users.id
ORDER BY issues.created_at DESC, issues.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent issues: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows, domain.ActivityIssue)
}

func (r *IssueRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "issues")
}

func scanIssue(row rowScanner) (*domain.Issue, error) {
	var (
		issue         domain.Issue
		status        string
		developerID   sql.NullInt64
		developerHash sql.NullString
	)
	if err := row.Scan(
		&issue.ID,
		&issue.RequesterID,
		&developerID,
		&issue.Title,
		&issue.Description,
		&status,
		&issue.CreatedAt,
		&issue.RequesterUserHash,
		&developerHash,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("issue: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan issue: %w", err)
	}
	issue.Status = domain.IssueStatus(status)
	issue.DeveloperID = int64Ptr(developerID)
	issue.DeveloperUserHash = stringPtr(developerHash)
	return &issue, nil
}

func scanActivities(rows *sql.Rows, kind domain.ActivityType) ([]domain.Activity, error) {
	var activities []domain.Activity
	for rows.Next() {
		a := domain.Activity{Type: kind}
		if err := rows.Scan(&a.Title, &a.CreatedAt, &a.UserHash); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func requireAffected(res sql.Result, what string) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", what, err)
	}
	if aff == 0 {
		return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
	}
	return nil
}
