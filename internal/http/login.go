package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// login authenticates a user_hash, registering it on first use, and returns a bearer token.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	if req.UserHash == "" || req.Password == "" {
		respondMessage(c, http.StatusBadRequest, "ユーザーIDとパスワードを入力してください")
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.UserHash, req.Password)
	if err != nil {
		h.fail(c, err, failure{internal: "ログイン処理に失敗しました"})
		return
	}

	token, err := h.tokens.Issue(result.User.UserHash)
	if err != nil {
		h.fail(c, err, failure{internal: "ログイン処理に失敗しました"})
		return
	}

	message := "ログインしました"
	if result.IsNew {
		message = "新規登録・ログインしました"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"isNew":      result.IsNew,
		"message":    message,
		"user_hash":  result.User.UserHash,
		"auth_token": token,
	})
}
