package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rabnifoundation/rabni-api/internal/container"
	handlers "github.com/rabnifoundation/rabni-api/internal/interface/http"
	"github.com/rabnifoundation/rabni-api/internal/interface/middleware"
)

// AdminModule wires the admin sign-in endpoints and the gated management API.
// Public: POST /api/admin/login, /refresh, /logout; GET /api/admin/session
// Gated: everything else under /api/admin
type AdminModule struct {
	Auth        *handlers.AdminAuthHandler
	Content     *handlers.ContentHandler
	Submissions *handlers.SubmissionHandler
	Dashboard   *handlers.DashboardHandler
	Gate        middleware.Checker
	LoginPath   string
	OnDeny      func(*gin.Context)
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)
	sessionLimiter := middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByIP(), nil)

	admin := rg.Group("/admin")
	admin.POST("/login", loginLimiter, m.Auth.Login)
	admin.POST("/refresh", refreshLimiter, m.Auth.Refresh)
	admin.POST("/logout", m.Auth.Logout)
	admin.GET("/session", sessionLimiter, m.Auth.Session)

	gated := admin.Group("/")
	gated.Use(middleware.AdminGate(m.Gate, m.LoginPath, middleware.DenyJSON, m.OnDeny))
	gated.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByAdminID(), nil))
	{
		gated.GET("/dashboard", m.Dashboard.Overview)

		gated.POST("/posts", m.Content.CreatePost)
		gated.PUT("/posts/:id", m.Content.UpdatePost)
		gated.DELETE("/posts/:id", m.Content.DeletePost)

		gated.POST("/gallery", m.Content.CreateGalleryItem)
		gated.PUT("/gallery/:id", m.Content.UpdateGalleryItem)
		gated.DELETE("/gallery/:id", m.Content.DeleteGalleryItem)

		gated.POST("/reports", m.Content.CreateReport)
		gated.PUT("/reports/:id", m.Content.UpdateReport)
		gated.DELETE("/reports/:id", m.Content.DeleteReport)

		gated.GET("/volunteers", m.Submissions.ListVolunteers)
		gated.GET("/contact", m.Submissions.ListContactMessages)
		gated.PATCH("/contact/:id/read", m.Submissions.MarkContactRead)
	}
}
