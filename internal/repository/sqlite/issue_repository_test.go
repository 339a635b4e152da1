package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
)

func TestIssueRepositoryListFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewIssueRepository(db)
	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	carol := mustCreateUser(t, db, "carol")

	first := &domain.Issue{RequesterID: alice.ID, Title: "street light"}
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	second := &domain.Issue{RequesterID: bob.ID, Title: "bus stop"}
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Issue{RequesterID: carol.ID, Title: "park"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, second.ID, domain.IssueStatusOpen, domain.IssueStatusProgress, &alice.ID))

	all, err := repo.List(ctx, domain.IssueFilterAll, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "park", all[0].Title)

	mine, err := repo.List(ctx, domain.IssueFilterMine, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "bus stop", mine[0].Title)
	require.NotNil(t, mine[0].DeveloperUserHash)
	assert.Equal(t, "alice", *mine[0].DeveloperUserHash)
	assert.Equal(t, "bob", mine[0].RequesterUserHash)
	assert.Equal(t, "street light", mine[1].Title)
	assert.Nil(t, mine[1].DeveloperID)
}

func TestIssueRepositoryUnassign(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewIssueRepository(db)
	req := mustCreateUser(t, db, "req")
	dev := mustCreateUser(t, db, "dev")

	issue := &domain.Issue{RequesterID: req.ID, Title: "t"}
	_, err := repo.Create(ctx, issue)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, issue.ID, domain.IssueStatusOpen, domain.IssueStatusProgress, &dev.ID))

	got, err := repo.Get(ctx, issue.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DeveloperID)
	assert.Equal(t, dev.ID, *got.DeveloperID)

	require.NoError(t, repo.Unassign(ctx, issue.ID))
	got, err = repo.Get(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusOpen, got.Status)
	assert.Nil(t, got.DeveloperID)
	assert.Nil(t, got.DeveloperUserHash)

	require.ErrorIs(t, repo.Unassign(ctx, 999), repository.ErrNotFound)

	// stale source status
	require.ErrorIs(t, repo.UpdateStatus(ctx, issue.ID, domain.IssueStatusProgress, domain.IssueStatusClosed, nil), repository.ErrNotFound)
}

func TestIssueRepositoryDeleteOpen(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	issues := NewIssueRepository(db)
	comments := NewCommentRepository(db)
	req := mustCreateUser(t, db, "req")
	dev := mustCreateUser(t, db, "dev")

	open := &domain.Issue{RequesterID: req.ID, Title: "open"}
	_, err := issues.Create(ctx, open)
	require.NoError(t, err)
	claimed := &domain.Issue{RequesterID: req.ID, Title: "claimed"}
	_, err = issues.Create(ctx, claimed)
	require.NoError(t, err)
	require.NoError(t, issues.UpdateStatus(ctx, claimed.ID, domain.IssueStatusOpen, domain.IssueStatusProgress, &dev.ID))

	_, err = comments.Create(ctx, &domain.Comment{IssueID: open.ID, UserID: dev.ID, Content: "hi"})
	require.NoError(t, err)

	require.ErrorIs(t, issues.DeleteOpen(ctx, claimed.ID), repository.ErrNotFound)
	_, err = issues.Get(ctx, claimed.ID)
	require.NoError(t, err)

	require.NoError(t, issues.DeleteOpen(ctx, open.ID))
	_, err = issues.Get(ctx, open.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	n, err := comments.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCommentRepositoryOrderAndMissingIssue(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	issues := NewIssueRepository(db)
	comments := NewCommentRepository(db)
	u := mustCreateUser(t, db, "u")

	issue := &domain.Issue{RequesterID: u.ID, Title: "t"}
	_, err := issues.Create(ctx, issue)
	require.NoError(t, err)

	for _, c := range []string{"first", "second", "third"} {
		_, err := comments.Create(ctx, &domain.Comment{IssueID: issue.ID, UserID: u.ID, Content: c})
		require.NoError(t, err)
	}

	list, err := comments.ListByIssue(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "third", list[2].Content)
	assert.Equal(t, "u", list[0].UserHash)

	_, err = comments.Create(ctx, &domain.Comment{IssueID: 12345, UserID: u.ID, Content: "x"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}
