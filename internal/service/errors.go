package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the parent of every *NotFound error below.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound indicates the user_hash is not registered.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrIssueNotFound indicates the issue id does not exist.
	ErrIssueNotFound = fmt.Errorf("issue %w", ErrNotFound)
	// ErrProductNotFound indicates the product id does not exist.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)

	// ErrInvalidInput marks a missing or malformed request field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the actor lacks the capability for a resource.
	ErrForbidden = errors.New("forbidden")
	// ErrIssueInProgress is returned when deleting an issue someone already started.
	ErrIssueInProgress = errors.New("issue already in progress")
	// ErrInvalidTransition is returned when an issue cannot move to the requested status.
	ErrInvalidTransition = errors.New("invalid status transition")
)
