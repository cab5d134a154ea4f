package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rabnifoundation/rabni-api/internal/authz"
	"github.com/rabnifoundation/rabni-api/internal/session"
	"github.com/rabnifoundation/rabni-api/pkg/helpers"
	"github.com/rabnifoundation/rabni-api/pkg/response"
)

const CtxAdminIDKey = "adminID"

// Checker runs one authorization attempt against the session carried by ctx.
type Checker interface {
	Check(ctx context.Context) authz.Result
}

// DenyMode selects how a denial is rendered.
type DenyMode int

const (
	// DenyJSON answers 401 with a JSON envelope naming the login path.
	DenyJSON DenyMode = iota
	// DenyRedirect answers 303 See Other to the login path.
	DenyRedirect
)

// AccessToken reads the admin access token from the cookie, falling back to
// an Authorization: Bearer header.
func AccessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// AdminGate lets a request through only when the gate authorizes its session.
// Every denial looks the same to the client; onDeny, when set, runs first.
func AdminGate(gate Checker, loginPath string, mode DenyMode, onDeny func(*gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqCtx := c.Request.Context()
		res := gate.Check(session.WithToken(reqCtx, AccessToken(c)))

		// client went away while we were deciding; nobody is left to answer
		if reqCtx.Err() != nil {
			c.Abort()
			return
		}

		if res.Decision == authz.Authorized {
			c.Set(CtxAdminIDKey, res.SubjectID)
			c.Next()
			return
		}

		if onDeny != nil {
			onDeny(c)
		}
		if mode == DenyRedirect {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", gin.H{"redirect": loginPath})
	}
}
