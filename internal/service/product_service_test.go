package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komarabo/internal/domain"
)

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "maker")

	_, err := f.product.Create(ctx, "maker", ProductInput{InitialPromptLog: "log"})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.product.Create(ctx, "maker", ProductInput{Title: "t"})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.product.Create(ctx, "ghost", ProductInput{Title: "t", InitialPromptLog: "log"})
	require.ErrorIs(t, err, ErrUserNotFound)

	n, err := f.products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.archive.logs)
}

func TestCreateProductArchivesSealedLog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "maker")

	p, err := f.product.Create(ctx, "maker", ProductInput{Title: "t", URL: "", InitialPromptLog: "the spark"})
	require.NoError(t, err)
	assert.Nil(t, p.URL)
	assert.Equal(t, domain.ProductStatusPublished, p.Status)
	assert.False(t, p.SealedAt.IsZero())

	require.Len(t, f.archive.logs, 1)
	assert.Equal(t, p.ID, f.archive.logs[0].ProductID)
	assert.Equal(t, "the spark", f.archive.logs[0].Body)
	assert.Equal(t, "maker", f.archive.logs[0].UserHash)

	require.NoError(t, f.product.Update(ctx, p.ID, "maker", "t2", "", ""))
	assert.Len(t, f.archive.logs, 1)
}

func TestCreateProductSurvivesArchiveFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "maker")
	f.archive.err = errors.New("bucket down")

	p, err := f.product.Create(ctx, "maker", ProductInput{Title: "t", InitialPromptLog: "log"})
	require.NoError(t, err)
	assert.Positive(t, p.ID)

	entry := f.logHook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
}

func TestUpdateProductKeepsPromptLog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "maker")
	f.user(t, "other")

	p, err := f.product.Create(ctx, "maker", ProductInput{Title: "v1", InitialPromptLog: "origin", DevObsession: "speed"})
	require.NoError(t, err)

	require.ErrorIs(t, f.product.Update(ctx, p.ID, "other", "hijack", "", ""), ErrForbidden)
	require.ErrorIs(t, f.product.Update(ctx, 999, "maker", "x", "", ""), ErrProductNotFound)
	require.ErrorIs(t, f.product.Update(ctx, p.ID, "maker", "", "", ""), ErrInvalidInput)

	for _, title := range []string{"v2", "v3", "v4"} {
		require.NoError(t, f.product.Update(ctx, p.ID, "maker", title, "https://example.com", "craft"))
	}

	got, err := f.product.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "v4", got.Title)
	assert.Equal(t, "origin", got.InitialPromptLog)
	assert.True(t, p.SealedAt.Equal(got.SealedAt))
	require.NotNil(t, got.URL)
	assert.Equal(t, "https://example.com", *got.URL)
}

func TestDeleteProductOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "maker")
	f.user(t, "other")

	p, err := f.product.Create(ctx, "maker", ProductInput{Title: "t", InitialPromptLog: "log"})
	require.NoError(t, err)

	require.ErrorIs(t, f.product.Delete(ctx, p.ID, "other"), ErrForbidden)
	require.ErrorIs(t, f.product.Delete(ctx, 999, "maker"), ErrProductNotFound)
	require.NoError(t, f.product.Delete(ctx, p.ID, "maker"))

	_, err = f.product.Get(ctx, p.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestBasePromptDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	prompt, err := f.product.BasePrompt(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBasePrompt, prompt)

	require.NoError(t, f.configs.Upsert(ctx, domain.BasePromptKey, "be curious"))
	prompt, err = f.product.BasePrompt(ctx)
	require.NoError(t, err)
	assert.Equal(t, "be curious", prompt)
}

func TestListPublished(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "maker")

	_, err := f.product.Create(ctx, "maker", ProductInput{Title: "a", InitialPromptLog: "log"})
	require.NoError(t, err)
	_, err = f.product.Create(ctx, "maker", ProductInput{Title: "b", InitialPromptLog: "log"})
	require.NoError(t, err)

	list, err := f.product.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Title)
	assert.Equal(t, "maker", list[0].CreatorUserHash)
}
