package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komarabo/internal/domain"
)

func TestLoginRegistersUnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.users.Login(ctx, "abc", "x")
	require.NoError(t, err)
	assert.True(t, res.IsNew)
	assert.Equal(t, "abc", res.User.UserHash)
	assert.Equal(t, domain.RoleRequester, res.User.Role)
	assert.Empty(t, res.User.PasswordHash)

	n, err := f.userRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	stored, err := f.userRepo.GetByHash(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}

func TestLoginExistingUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.users.Login(ctx, "abc", "x")
	require.NoError(t, err)

	res, err := f.users.Login(ctx, "abc", "x")
	require.NoError(t, err)
	assert.False(t, res.IsNew)

	_, err = f.users.Login(ctx, "abc", "y")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	n, err := f.userRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLoginRequiresFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Login(context.Background(), "", "x")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.users.Login(context.Background(), "abc", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginUpgradesLegacyDigest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sum := sha256.Sum256([]byte("old-pass"))
	legacy := &domain.User{UserHash: "legacy", PasswordHash: hex.EncodeToString(sum[:])}
	_, err := f.userRepo.Create(ctx, legacy)
	require.NoError(t, err)

	_, err = f.users.Login(ctx, "legacy", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := f.users.Login(ctx, "legacy", "old-pass")
	require.NoError(t, err)
	assert.False(t, res.IsNew)

	stored, err := f.userRepo.GetByHash(ctx, "legacy")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))

	_, err = f.users.Login(ctx, "legacy", "old-pass")
	require.NoError(t, err)
}

func TestLoginRejectsPlaintextRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.userRepo.Create(ctx, &domain.User{UserHash: "plain", PasswordHash: "secret"})
	require.NoError(t, err)

	_, err = f.users.Login(ctx, "plain", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveAndSetAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "u1")

	_, err := f.users.Resolve(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, f.users.SetAdmin(ctx, "nobody", true), ErrUserNotFound)
	require.NoError(t, f.users.SetAdmin(ctx, "u1", true))

	u, err := f.users.Resolve(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestLoginAcceptsPasswordsLongerThanBcryptLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	long := strings.Repeat("あ", 30)
	require.Greater(t, len(long), 72)

	res, err := f.users.Login(ctx, "long", long)
	require.NoError(t, err)
	assert.True(t, res.IsNew)

	res, err = f.users.Login(ctx, "long", long)
	require.NoError(t, err)
	assert.False(t, res.IsNew)

	_, err = f.users.Login(ctx, "long", long[:len(long)-3])
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUpgradesLegacyDigestOfLongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	long := strings.Repeat("legacy-password-", 6)
	require.Greater(t, len(long), 72)

	sum := sha256.Sum256([]byte(long))
	_, err := f.userRepo.Create(ctx, &domain.User{UserHash: "old", PasswordHash: hex.EncodeToString(sum[:])})
	require.NoError(t, err)

	_, err = f.users.Login(ctx, "old", long)
	require.NoError(t, err)

	stored, err := f.userRepo.GetByHash(ctx, "old")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))

	_, err = f.users.Login(ctx, "old", long)
	require.NoError(t, err)
}
