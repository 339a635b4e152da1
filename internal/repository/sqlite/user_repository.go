package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = domain.RoleRequester
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (user_hash, password_hash, role, is_admin, created_at)
VALUES (?, ?, ?, ?, ?)`,
		user.UserHash,
		user.PasswordHash,
		string(user.Role),
		user.IsAdmin,
		user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByHash(ctx context.Context, userHash string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_hash, password_hash, role, is_admin, created_at
FROM users
WHERE user_hash = ?`,
		userHash,
	)
	return scanUser(row)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id); err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, userHash string, isAdmin bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_admin = ? WHERE user_hash = ?`, isAdmin, userHash)
	if err != nil {
		return fmt.Errorf("set admin flag: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set admin rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("user %s: %w", userHash, repository.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_hash, password_hash, role, is_admin, created_at
FROM users
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "users")
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user domain.User
		role string
	)
	if err := row.Scan(
		&user.ID,
		&user.UserHash,
		&user.PasswordHash,
		&role,
		&user.IsAdmin,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}
