package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminFallback is the engine's NoRoute handler. Unknown paths under the
// admin area go back to the login entry; everything else is a JSON 404.
func AdminFallback(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == loginPath || strings.HasPrefix(p, loginPath+"/") {
			c.Redirect(http.StatusSeeOther, loginPath)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found", "request_id": c.GetString("request_id")})
	}
}
