package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"komarabo/internal/domain"
)

// flexID accepts an id sent either as a JSON number or as a numeric string.
type flexID int64

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", data)
	}
	*id = flexID(n)
	return nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type loginRequest struct {
	UserHash string `json:"user_hash"`
	Password string `json:"password"`
}

type postIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserHash    string `json:"user_hash"`
}

type updateIssueStatusRequest struct {
	ID       flexID `json:"id"`
	Status   string `json:"status"`
	UserHash string `json:"user_hash"`
}

type issueIDRequest struct {
	ID       flexID `json:"id"`
	UserHash string `json:"user_hash"`
}

type postCommentRequest struct {
	IssueID  flexID `json:"issue_id"`
	Content  string `json:"content"`
	UserHash string `json:"user_hash"`
}

type postProductRequest struct {
	Title            string `json:"title"`
	URL              string `json:"url"`
	InitialPromptLog string `json:"initial_prompt_log"`
	DevObsession     string `json:"dev_obsession"`
	UserHash         string `json:"user_hash"`
}

// updateProductRequest has no field for the prompt log or its seal time.
type updateProductRequest struct {
	ID           flexID `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	DevObsession string `json:"dev_obsession"`
	UserHash     string `json:"user_hash"`
}

type productIDRequest struct {
	ID       flexID `json:"id"`
	UserHash string `json:"user_hash"`
}

type adminRequest struct {
	UserHash string `json:"user_hash"`
}

type updateBasePromptRequest struct {
	Prompt   *string `json:"prompt"`
	UserHash string  `json:"user_hash"`
}

type issueResponse struct {
	ID                int64     `json:"id"`
	RequesterID       int64     `json:"requester_id"`
	DeveloperID       *int64    `json:"developer_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UserHash          string    `json:"user_hash"`
	RequesterUserHash string    `json:"requester_user_hash"`
	DeveloperUserHash *string   `json:"developer_user_hash"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	IssueID   int64     `json:"issue_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserHash  string    `json:"user_hash"`
}

type productResponse struct {
	ID               int64     `json:"id"`
	CreatorID        int64     `json:"creator_id"`
	Title            string    `json:"title"`
	URL              *string   `json:"url"`
	InitialPromptLog string    `json:"initial_prompt_log"`
	DevObsession     *string   `json:"dev_obsession"`
	Status           string    `json:"status"`
	SealedAt         time.Time `json:"sealed_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	CreatorUserHash  string    `json:"creator_user_hash"`
}

type adminUserResponse struct {
	UserHash  string    `json:"user_hash"`
	CreatedAt time.Time `json:"created_at"`
	IsAdmin   bool      `json:"is_admin"`
}

type activityResponse struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UserHash  string    `json:"user_hash"`
	Type      string    `json:"type"`
}

func issueToResponse(issue domain.Issue) issueResponse {
	return issueResponse{
		ID:                issue.ID,
		RequesterID:       issue.RequesterID,
		DeveloperID:       issue.DeveloperID,
		Title:             issue.Title,
		Description:       issue.Description,
		Status:            string(issue.Status),
		CreatedAt:         issue.CreatedAt,
		UserHash:          issue.RequesterUserHash,
		RequesterUserHash: issue.RequesterUserHash,
		DeveloperUserHash: issue.DeveloperUserHash,
	}
}

func issuesToResponse(issues []domain.Issue) []issueResponse {
	out := make([]issueResponse, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issueToResponse(issue))
	}
	return out
}

func commentsToResponse(comments []domain.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentResponse{
			ID:        cm.ID,
			IssueID:   cm.IssueID,
			UserID:    cm.UserID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
			UserHash:  cm.UserHash,
		})
	}
	return out
}

func productToResponse(p domain.Product) productResponse {
	return productResponse{
		ID:               p.ID,
		CreatorID:        p.CreatorID,
		Title:            p.Title,
		URL:              p.URL,
		InitialPromptLog: p.InitialPromptLog,
		DevObsession:     p.DevObsession,
		Status:           string(p.Status),
		SealedAt:         p.SealedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		CreatorUserHash:  p.CreatorUserHash,
	}
}

func productsToResponse(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productToResponse(p))
	}
	return out
}
