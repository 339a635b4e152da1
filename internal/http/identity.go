package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	tokenSubjectKey = "komarabo.token_subject"
	tokenInvalidKey = "komarabo.token_invalid"
)

// identify verifies an optional bearer token and stores its subject on the context.
// A bad token is only recorded: login and public reads still go through, while
// actor and adminActor turn it into a 401.
func (h *Handler) identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || h.tokens == nil {
			c.Set(tokenInvalidKey, true)
			c.Next()
			return
		}

		subject, err := h.tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			h.logger.WithError(err).Debug("reject bearer token")
			c.Set(tokenInvalidKey, true)
			c.Next()
			return
		}

		c.Set(tokenSubjectKey, subject)
		c.Next()
	}
}

// actor returns the user_hash acting on this request. claimed is the user_hash the
// client sent in its body or query. When ok is false a response has been written.
func (h *Handler) actor(c *gin.Context, claimed string) (userHash string, ok bool) {
	claimed = strings.TrimSpace(claimed)

	if c.GetBool(tokenInvalidKey) {
		respondMessage(c, http.StatusUnauthorized, "認証トークンが不正です")
		return "", false
	}

	if subject := c.GetString(tokenSubjectKey); subject != "" {
		if claimed != "" && claimed != subject {
			respondMessage(c, http.StatusForbidden, "他のユーザーとして操作することはできません")
			return "", false
		}
		return subject, true
	}

	if h.requireToken {
		respondMessage(c, http.StatusUnauthorized, "ログインが必要です")
		return "", false
	}
	return claimed, true
}

// adminActor is actor for the admin endpoints, which answer with {error}.
func (h *Handler) adminActor(c *gin.Context, claimed string) (string, bool) {
	claimed = strings.TrimSpace(claimed)

	if c.GetBool(tokenInvalidKey) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}

	if subject := c.GetString(tokenSubjectKey); subject != "" {
		if claimed != "" && claimed != subject {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return "", false
		}
		return subject, true
	}

	if h.requireToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return claimed, true
}
