package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"komarabo/internal/auth"
	"komarabo/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	issues       service.IssueService
	products     service.ProductService
	admin        service.AdminService
	tokens       *auth.Issuer
	requireToken bool
	logger       *logrus.Logger
}

// Options configures a Handler.
type Options struct {
	Users    service.UserService
	Issues   service.IssueService
	Products service.ProductService
	Admin    service.AdminService
	Tokens   *auth.Issuer
	// RequireToken rejects requests that identify the caller only by user_hash.
	RequireToken bool
	Logger       *logrus.Logger
}

func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:        opts.Users,
		issues:       opts.Issues,
		products:     opts.Products,
		admin:        opts.Admin,
		tokens:       opts.Tokens,
		requireToken: opts.RequireToken,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.logger))

	api := router.Group("/api", h.identify())
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		api.POST("/login", h.login)

		api.GET("/list-issues", h.listIssues)
		api.POST("/post-issue", h.postIssue)
		api.GET("/get-issue-detail", h.getIssueDetail)
		api.POST("/update-issue-status", h.updateIssueStatus)
		api.POST("/unassign-issue", h.unassignIssue)
		api.POST("/delete-issue", h.deleteIssue)
		api.POST("/post-comment", h.postComment)

		waku := api.Group("/wakuwaku")
		waku.GET("/base-prompt", h.basePrompt)
		waku.GET("/products", h.listProducts)
		waku.GET("/product/:id", h.getProduct)
		waku.POST("/post-product", h.postProduct)
		waku.POST("/update-product", h.updateProduct)
		waku.POST("/delete-product", h.deleteProduct)

		admin := api.Group("/admin")
		admin.POST("/check", h.adminCheck)
		admin.POST("/stats", h.adminStats)
		admin.POST("/users", h.adminUsers)
		admin.POST("/recent-activity", h.adminRecentActivity)
		admin.POST("/update-base-prompt", h.adminUpdateBasePrompt)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request")
	}
}
