package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStatus is returned when a string does not name a known issue status.
var ErrInvalidStatus = errors.New("invalid issue status")

type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "open"
	IssueStatusProgress IssueStatus = "progress"
	IssueStatusClosed   IssueStatus = "closed"
)

// issueTransitions lists the allowed status changes for UpdateStatus.
// Unassigning bypasses this table and always lands on open.
var issueTransitions = map[IssueStatus][]IssueStatus{
	IssueStatusOpen:     {IssueStatusProgress, IssueStatusClosed},
	IssueStatusProgress: {IssueStatusOpen, IssueStatusClosed},
	IssueStatusClosed:   {},
}

// ParseIssueStatus converts user input into an IssueStatus.
func ParseIssueStatus(s string) (IssueStatus, error) {
	switch st := IssueStatus(s); st {
	case IssueStatusOpen, IssueStatusProgress, IssueStatusClosed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// CanTransition reports whether an issue may move from one status to another.
func (s IssueStatus) CanTransition(to IssueStatus) bool {
	for _, next := range issueTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Issue is a local problem posted by a requester and optionally claimed by a developer.
type Issue struct {
	ID                int64
	RequesterID       int64
	DeveloperID       *int64
	Title             string
	Description       string
	Status            IssueStatus
	CreatedAt         time.Time
	RequesterUserHash string
	DeveloperUserHash *string
}

// Deletable reports whether nobody has started work on the issue yet.
func (i *Issue) Deletable() bool {
	return i.Status == IssueStatusOpen && i.DeveloperID == nil
}

// Comment is an append-only note on an issue.
type Comment struct {
	ID        int64
	IssueID   int64
	UserID    int64
	Content   string
	CreatedAt time.Time
	UserHash  string
}

// IssueFilter selects which issues ListIssues returns.
type IssueFilter string

const (
	IssueFilterAll  IssueFilter = "all"
	IssueFilterMine IssueFilter = "mine"
)
