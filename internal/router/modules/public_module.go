package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rabnifoundation/rabni-api/internal/container"
	handlers "github.com/rabnifoundation/rabni-api/internal/interface/http"
	"github.com/rabnifoundation/rabni-api/internal/interface/middleware"
)

// PublicModule serves the public site's data and forms.
// GET /api/posts, /api/posts/search, /api/gallery, /api/reports,
// /api/impact/regions[/:name]; POST /api/contact, /api/volunteers
type PublicModule struct {
	Content     *handlers.ContentHandler
	Submissions *handlers.SubmissionHandler
	Impact      *handlers.ImpactHandler
}

func NewPublicModule(content *handlers.ContentHandler, submissions *handlers.SubmissionHandler, impact *handlers.ImpactHandler) *PublicModule {
	return &PublicModule{Content: content, Submissions: submissions, Impact: impact}
}

func (m *PublicModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	formLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	read := rg.Group("/")
	read.Use(readLimiter)
	{
		read.GET("/posts", m.Content.ListPosts)
		read.GET("/posts/search", m.Content.SearchPosts)
		read.GET("/gallery", m.Content.ListGallery)
		read.GET("/reports", m.Content.ListReports)
		read.GET("/impact/regions", m.Impact.ListRegions)
		read.GET("/impact/regions/:name", m.Impact.GetRegion)
	}

	rg.POST("/contact", formLimiter, m.Submissions.SubmitContact)
	rg.POST("/volunteers", formLimiter, m.Submissions.SubmitVolunteer)
}
