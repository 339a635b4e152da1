package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"komarabo/internal/service"
)

func (h *Handler) basePrompt(c *gin.Context) {
	prompt, err := h.products.BasePrompt(c.Request.Context())
	if err != nil {
		h.fail(c, err, failure{internal: "ベースプロンプトの取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prompt": prompt})
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.products.ListPublished(c.Request.Context())
	if err != nil {
		h.fail(c, err, failure{internal: "プロダクト一覧の取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, productsToResponse(products))
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondMessage(c, http.StatusBadRequest, "IDが不正です")
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, failure{internal: "プロダクトの取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, productToResponse(*product))
}

func (h *Handler) postProduct(c *gin.Context) {
	var req postProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	actor, ok := h.actor(c, req.UserHash)
	if !ok {
		return
	}

	product, err := h.products.Create(c.Request.Context(), actor, service.ProductInput{
		Title:            req.Title,
		URL:              req.URL,
		InitialPromptLog: req.InitialPromptLog,
		DevObsession:     req.DevObsession,
	})
	if err != nil {
		h.fail(c, err, failure{internal: "プロダクトの投稿に失敗しました", invalid: "タイトルと初期衝動履歴は必須です"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "プロダクトを投稿しました！", "id": product.ID})
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req updateProductRequest
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

	err := h.products.Update(c.Request.Context(), int64(req.ID), actor, req.Title, req.URL, req.DevObsession)
	if err != nil {
		h.fail(c, err, failure{
			internal:  "プロダクトの更新に失敗しました",
			forbidden: "自分の投稿のみ編集できます",
			invalid:   "タイトルは必須です",
		})
		return
	}
	respondOK(c, "プロダクトを更新しました")
}

func (h *Handler) deleteProduct(c *gin.Context) {
	var req productIDRequest
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

	if err := h.products.Delete(c.Request.Context(), int64(req.ID), actor); err != nil {
		h.fail(c, err, failure{internal: "プロダクトの削除に失敗しました", forbidden: "自分の投稿のみ削除できます"})
		return
	}
	respondOK(c, "プロダクトを削除しました")
}
