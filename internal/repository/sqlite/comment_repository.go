package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	comment.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO comments (issue_id, user_id, content, created_at)
VALUES (?, ?, ?, ?)`,
		comment.IssueID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "foreign key") {
			return 0, fmt.Errorf("insert comment: issue: %w", repository.ErrNotFound)
		}
		return 0, fmt.Errorf("insert comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comment last insert id: %w", err)
	}
	comment.ID = id
	return id, nil
}

func (r *CommentRepository) ListByIssue(ctx context.Context, issueID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT comments.id, comments.issue_id, comments.user_id, comments.content, comments.created_at, users.user_hash
FROM comments
JOIN users ON comments.user_id = users.id
WHERE comments.issue_id = ?
ORDER BY comments.created_at ASC, comments.id ASC`, issueID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.IssueID, &c.UserID, &c.Content, &c.CreatedAt, &c.UserHash); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "comments")
}
