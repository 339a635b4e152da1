package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"komarabo/internal/domain"
)

const msgBadRequest = "リクエストの形式が不正です"

func (h *Handler) listIssues(c *gin.Context) {
	filter := domain.IssueFilter(c.DefaultQuery("filter", string(domain.IssueFilterAll)))

	var userHash string
	if filter == domain.IssueFilterMine {
		actor, ok := h.actor(c, c.Query("user_hash"))
		if !ok {
			return
		}
		userHash = actor
	}

	issues, err := h.issues.List(c.Request.Context(), filter, userHash)
	if err != nil {
		h.fail(c, err, failure{internal: "課題一覧の取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, issuesToResponse(issues))
}

func (h *Handler) postIssue(c *gin.Context) {
	var req postIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	actor, ok := h.actor(c, req.UserHash)
	if !ok {
		return
	}

	issue, err := h.issues.Post(c.Request.Context(), actor, req.Title, req.Description)
	if err != nil {
		h.fail(c, err, failure{internal: "課題の投稿に失敗しました", invalid: "タイトルを入力してください"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "投稿完了しました！", "id": issue.ID})
}

func (h *Handler) getIssueDetail(c *gin.Context) {
	id, ok := parseID(c.Query("id"))
	if !ok {
		respondMessage(c, http.StatusBadRequest, "IDが指定されていません")
		return
	}

	issue, comments, err := h.issues.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, failure{internal: "課題の取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"issue":    issueToResponse(*issue),
		"comments": commentsToResponse(comments),
	})
}

func (h *Handler) updateIssueStatus(c *gin.Context) {
	var req updateIssueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	if req.ID <= 0 {
		respondMessage(c, http.StatusBadRequest, "IDが指定されていません")
		return
	}
	actor, ok := h.actor(c, req.UserHash)
	if !ok {
		return
	}

	if err := h.issues.UpdateStatus(c.Request.Context(), int64(req.ID), req.Status, actor); err != nil {
		h.fail(c, err, failure{internal: "状態の更新に失敗しました", invalid: "不正なステータスです"})
		return
	}
	respondOK(c, "状態を更新しました")
}

func (h *Handler) unassignIssue(c *gin.Context) {
	var req issueIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	if req.ID <= 0 {
		respondMessage(c, http.StatusBadRequest, "IDが指定されていません")
		return
	}
	if _, ok := h.actor(c, req.UserHash); !ok {
		return
	}

	if err := h.issues.Unassign(c.Request.Context(), int64(req.ID)); err != nil {
		h.fail(c, err, failure{internal: "挙手の取り消しに失敗しました"})
		return
	}
	respondOK(c, "挙手を下ろしました")
}

func (h *Handler) deleteIssue(c *gin.Context) {
	var req issueIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	if req.ID <= 0 {
		respondMessage(c, http.StatusBadRequest, "IDが指定されていません")
		return
	}
	actor, ok := h.actor(c, req.UserHash)
	if !ok {
		return
	}

	err := h.issues.Delete(c.Request.Context(), int64(req.ID), actor)
	if err != nil {
		h.fail(c, err, failure{internal: "課題の削除に失敗しました", forbidden: "自分の投稿のみ削除できます"})
		return
	}
	respondOK(c, "課題を削除しました")
}

func (h *Handler) postComment(c *gin.Context) {
	var req postCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	if req.IssueID <= 0 {
		respondMessage(c, http.StatusBadRequest, "IDが指定されていません")
		return
	}
	actor, ok := h.actor(c, req.UserHash)
	if !ok {
		return
	}

	comment, err := h.issues.Comment(c.Request.Context(), int64(req.IssueID), actor, req.Content)
	if err != nil {
		h.fail(c, err, failure{internal: "コメントの投稿に失敗しました", invalid: "コメントを入力してください"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "コメントを投稿しました", "id": comment.ID})
}
