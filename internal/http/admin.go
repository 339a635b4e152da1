package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bindAdmin decodes the request and resolves the acting admin candidate.
// An empty body is allowed for token callers. The admin flag itself is
// checked by the service on every call.
func (h *Handler) bindAdmin(c *gin.Context, req any, claimed func() string) (string, bool) {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBadRequest})
		return "", false
	}
	return h.adminActor(c, claimed())
}

func (h *Handler) adminCheck(c *gin.Context) {
	var req adminRequest
	actor, ok := h.bindAdmin(c, &req, func() string { return req.UserHash })
	if !ok {
		return
	}

	isAdmin, err := h.admin.IsAdmin(c.Request.Context(), actor)
	if err != nil {
		h.adminFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_admin": isAdmin})
}

func (h *Handler) adminStats(c *gin.Context) {
	var req adminRequest
	actor, ok := h.bindAdmin(c, &req, func() string { return req.UserHash })
	if !ok {
		return
	}

	stats, err := h.admin.Stats(c.Request.Context(), actor)
	if err != nil {
		h.adminFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":    stats.Users,
		"issues":   stats.Issues,
		"products": stats.Products,
		"comments": stats.Comments,
	})
}

func (h *Handler) adminUsers(c *gin.Context) {
	var req adminRequest
	actor, ok := h.bindAdmin(c, &req, func() string { return req.UserHash })
	if !ok {
		return
	}

	users, err := h.admin.Users(c.Request.Context(), actor)
	if err != nil {
		h.adminFail(c, err)
		return
	}

	out := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserResponse{UserHash: u.UserHash, CreatedAt: u.CreatedAt, IsAdmin: u.IsAdmin})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *Handler) adminRecentActivity(c *gin.Context) {
	var req adminRequest
	actor, ok := h.bindAdmin(c, &req, func() string { return req.UserHash })
	if !ok {
		return
	}

	activities, err := h.admin.RecentActivity(c.Request.Context(), actor)
	if err != nil {
		h.adminFail(c, err)
		return
	}

	out := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, activityResponse{
			Title:     a.Title,
			CreatedAt: a.CreatedAt,
			UserHash:  a.UserHash,
			Type:      string(a.Type),
		})
	}
	c.JSON(http.StatusOK, gin.H{"activities": out})
}

// adminUpdateBasePrompt answers with {success, message} like the product endpoints.
func (h *Handler) adminUpdateBasePrompt(c *gin.Context) {
	var req updateBasePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	if req.Prompt == nil {
		respondMessage(c, http.StatusBadRequest, "プロンプトが指定されていません")
		return
	}
	actor, ok := h.actor(c, req.UserHash)
	if !ok {
		return
	}

	if err := h.admin.UpdateBasePrompt(c.Request.Context(), actor, *req.Prompt); err != nil {
		h.fail(c, err, failure{internal: "ベースプロンプトの更新に失敗しました", forbidden: "管理者権限が必要です"})
		return
	}
	respondOK(c, "ベースプロンプトを更新しました")
}
