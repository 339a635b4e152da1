package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
)

// LoginResult reports who logged in and whether the account was just created.
type LoginResult struct {
	User  *domain.User
	IsNew bool
}

// UserService describes user lifecycle operations.
type UserService interface {
	// Login authenticates userHash, registering it on first sight.
	Login(ctx context.Context, userHash, password string) (*LoginResult, error)
	// Resolve loads the user for userHash; it returns ErrUserNotFound for unknown hashes.
	Resolve(ctx context.Context, userHash string) (*domain.User, error)
	SetAdmin(ctx context.Context, userHash string, isAdmin bool) error
}

type userService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{
		users:      users,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *userService) Login(ctx context.Context, userHash, password string) (*LoginResult, error) {
	userHash = strings.TrimSpace(userHash)
	if userHash == "" || password == "" {
		return nil, fmt.Errorf("%w: user_hash and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByHash(ctx, userHash)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if user == nil {
		created, err := s.register(ctx, userHash, password)
		if err == nil {
			return &LoginResult{User: sanitizeUser(created), IsNew: true}, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		// lost a registration race; authenticate against the winner
		if user, err = s.users.GetByHash(ctx, userHash); err != nil {
			return nil, err
		}
	}

	ok, legacy := checkPassword(user.PasswordHash, password)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if legacy {
		hash, err := s.hashPassword(password)
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return nil, err
		}
	}

	return &LoginResult{User: sanitizeUser(user), IsNew: false}, nil
}

func (s *userService) register(ctx context.Context, userHash, password string) (*domain.User, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserHash:     userHash,
		PasswordHash: hash,
		Role:         domain.RoleRequester,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Resolve(ctx context.Context, userHash string) (*domain.User, error) {
	userHash = strings.TrimSpace(userHash)
	if userHash == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByHash(ctx, userHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) SetAdmin(ctx context.Context, userHash string, isAdmin bool) error {
	if err := s.users.SetAdmin(ctx, strings.TrimSpace(userHash), isAdmin); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// hashPassword bcrypts the hex SHA-256 digest of password. The digest is always
// 64 bytes, which keeps any password under bcrypt's 72 byte input limit.
func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passwordDigest(password)), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func passwordDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// checkPassword compares password with a stored bcrypt hash or a legacy
// SHA-256 hex digest. legacy is true when the stored value should be rehashed.
func checkPassword(stored, password string) (ok bool, legacy bool) {
	digest := passwordDigest(password)
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(digest)) == nil, false
	}
	if len(stored) == sha256.Size*2 {
		if subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(digest)) == 1 {
			return true, true
		}
	}
	return false, false
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		UserHash:  user.UserHash,
		Role:      user.Role,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}
