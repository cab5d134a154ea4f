package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/application"
	"github.com/rabnifoundation/rabni-api/internal/interface/middleware"
	"github.com/rabnifoundation/rabni-api/pkg/response"
)

type Overviewer interface {
	Overview(ctx context.Context) (*application.Dashboard, error)
}

type DashboardHandler struct {
	Svc    Overviewer
	Logger *logrus.Logger
}

func NewDashboardHandler(svc Overviewer, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

// Overview GET /api/admin/dashboard and GET /admin/dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	d, err := h.Svc.Overview(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err, "load dashboard")
		return
	}
	response.Success(c, http.StatusOK, d, "dashboard", gin.H{"admin_id": c.GetString(middleware.CtxAdminIDKey)})
}
