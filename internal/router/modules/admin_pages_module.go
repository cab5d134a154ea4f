package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/rabnifoundation/rabni-api/internal/interface/http"
	"github.com/rabnifoundation/rabni-api/internal/interface/middleware"
)

// AdminPagesModule serves the browser entry points of the admin area. The
// dashboard and its sections redirect to the login entry on any denial.
type AdminPagesModule struct {
	Auth        *handlers.AdminAuthHandler
	Content     *handlers.ContentHandler
	Submissions *handlers.SubmissionHandler
	Dashboard   *handlers.DashboardHandler
	Gate        middleware.Checker
	LoginPath   string
	OnDeny      func(*gin.Context)
}

func (m *AdminPagesModule) Register(rg *gin.RouterGroup) {
	rg.GET(m.LoginPath, m.Auth.Entry)

	dash := rg.Group(m.LoginPath + "/dashboard")
	dash.Use(middleware.AdminGate(m.Gate, m.LoginPath, middleware.DenyRedirect, m.OnDeny))
	{
		dash.GET("", m.Dashboard.Overview)
		dash.GET("/blog", m.Content.ListPosts)
		dash.GET("/gallery", m.Content.ListGallery)
		dash.GET("/reports", m.Content.ListReports)
		dash.GET("/volunteers", m.Submissions.ListVolunteers)
		dash.GET("/contact", m.Submissions.ListContactMessages)
	}
}
