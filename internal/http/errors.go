package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"komarabo/internal/service"
)

// failure carries the messages a handler wants for errors whose wording depends on the route.
type failure struct {
	internal  string
	forbidden string
	invalid   string
}

func (h *Handler) fail(c *gin.Context, err error, f failure) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		msg := f.invalid
		if msg == "" {
			msg = "入力内容が不足しています"
		}
		respondMessage(c, http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrIssueInProgress):
		respondMessage(c, http.StatusBadRequest, "着手済みの課題は削除できません")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondMessage(c, http.StatusUnauthorized, "パスワードが違います")
	case errors.Is(err, service.ErrForbidden):
		msg := f.forbidden
		if msg == "" {
			msg = "この操作を行う権限がありません"
		}
		respondMessage(c, http.StatusForbidden, msg)
	case errors.Is(err, service.ErrUserNotFound):
		respondMessage(c, http.StatusNotFound, "ユーザーが見つかりません")
	case errors.Is(err, service.ErrIssueNotFound):
		respondMessage(c, http.StatusNotFound, "課題が見つかりません")
	case errors.Is(err, service.ErrProductNotFound):
		respondMessage(c, http.StatusNotFound, "プロダクトが見つかりません")
	case errors.Is(err, service.ErrInvalidTransition):
		respondMessage(c, http.StatusConflict, "この状態には変更できません")
	default:
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		msg := f.internal
		if msg == "" {
			msg = "サーバーエラーが発生しました"
		}
		respondMessage(c, http.StatusInternalServerError, msg)
	}
}

// adminFail maps admin errors onto the {error} body the dashboard expects.
func (h *Handler) adminFail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}
	h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("admin request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func respondOK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
