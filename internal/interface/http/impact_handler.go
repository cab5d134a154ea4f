package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rabnifoundation/rabni-api/internal/domain/impact"
	"github.com/rabnifoundation/rabni-api/pkg/response"
)

type ImpactHandler struct{}

func NewImpactHandler() *ImpactHandler { return &ImpactHandler{} }

// ListRegions GET /api/impact/regions
func (h *ImpactHandler) ListRegions(c *gin.Context) {
	response.Success(c, http.StatusOK, impact.Regions(), "impact regions", impact.Totals())
}

// GetRegion GET /api/impact/regions/:name
func (h *ImpactHandler) GetRegion(c *gin.Context) {
	r, ok := impact.Lookup(c.Param("name"))
	if !ok {
		response.Error[any](c, http.StatusNotFound, "region not found", nil)
		return
	}
	response.Success(c, http.StatusOK, r, "impact region", nil)
}
