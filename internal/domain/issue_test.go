package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIssueStatus(t *testing.T) {
	for _, s := range []string{"open", "progress", "closed"} {
		st, err := ParseIssueStatus(s)
		require.NoError(t, err)
		assert.Equal(t, IssueStatus(s), st)
	}

	_, err := ParseIssueStatus("done")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseIssueStatus("")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestIssueStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to IssueStatus
		ok       bool
	}{
		{IssueStatusOpen, IssueStatusProgress, true},
		{IssueStatusOpen, IssueStatusClosed, true},
		{IssueStatusOpen, IssueStatusOpen, false},
		{IssueStatusProgress, IssueStatusOpen, true},
		{IssueStatusProgress, IssueStatusClosed, true},
		{IssueStatusProgress, IssueStatusProgress, false},
		{IssueStatusClosed, IssueStatusOpen, false},
		{IssueStatusClosed, IssueStatusProgress, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to))
		})
	}
}

func TestIssueDeletable(t *testing.T) {
	dev := int64(7)

	assert.True(t, (&Issue{Status: IssueStatusOpen}).Deletable())
	assert.False(t, (&Issue{Status: IssueStatusProgress}).Deletable())
	assert.False(t, (&Issue{Status: IssueStatusOpen, DeveloperID: &dev}).Deletable())
	assert.False(t, (&Issue{Status: IssueStatusClosed}).Deletable())
}
