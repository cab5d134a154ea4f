package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/application"
	"github.com/rabnifoundation/rabni-api/internal/authz"
	"github.com/rabnifoundation/rabni-api/internal/interface/middleware"
	"github.com/rabnifoundation/rabni-api/internal/session"
	"github.com/rabnifoundation/rabni-api/pkg/helpers"
	"github.com/rabnifoundation/rabni-api/pkg/response"
)

// AdminAuth is the sign-in surface of the admin service.
type AdminAuth interface {
	Login(ctx context.Context, email, password string, meta application.RequestMeta) (*application.LoginResponse, application.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (application.TokenPair, string, error)
	Logout(ctx context.Context, accessToken, refreshToken string, meta application.RequestMeta)
	RecordDenial(ctx context.Context, meta application.RequestMeta)
}

// GateRunner is the admin gate as the auth handlers use it.
type GateRunner interface {
	Check(ctx context.Context) authz.Result
	Begin(ctx context.Context, apply func(authz.Decision)) *authz.Visit
}

type AdminAuthHandler struct {
	Svc           AdminAuth
	Gate          GateRunner
	Cookies       *helpers.Manager
	LoginPath     string
	DashboardPath string
	Logger        *logrus.Logger
}

func NewAdminAuthHandler(svc AdminAuth, gate GateRunner, cookies *helpers.Manager, loginPath string, logger *logrus.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		Svc:           svc,
		Gate:          gate,
		Cookies:       cookies,
		LoginPath:     loginPath,
		DashboardPath: loginPath + "/dashboard",
		Logger:        logger,
	}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func tokenMeta(pair application.TokenPair) map[string]any {
	return map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry}
}

// Login POST /api/admin/login
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		if !errors.Is(err, application.ErrInvalidCredentials) && h.Logger != nil {
			h.Logger.WithError(err).Error("admin login failed")
		}
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, res, "login successful", tokenMeta(pair))
}

// Refresh POST /api/admin/refresh
func (h *AdminAuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.Cookies.Clear(c)
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", tokenMeta(pair))
}

// Logout POST /api/admin/logout
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	refresh, _ := c.Cookie(helpers.RefreshCookie)
	h.Svc.Logout(c.Request.Context(), middleware.AccessToken(c), refresh, requestMeta(c))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// RecordDenial is the gate's deny hook; it appends the denial to the audit
// trail before the gate answers.
func (h *AdminAuthHandler) RecordDenial(c *gin.Context) {
	h.Svc.RecordDenial(c.Request.Context(), requestMeta(c))
}

// Session GET /api/admin/session reports the gate decision for the caller's
// session. If the client disconnects first the visit is dropped and nothing
// is written.
func (h *AdminAuthHandler) Session(c *gin.Context) {
	reqCtx := c.Request.Context()
	v := h.Gate.Begin(session.WithToken(reqCtx, middleware.AccessToken(c)), nil)
	defer v.Close()

	select {
	case <-v.Done():
	case <-reqCtx.Done():
		c.Abort()
		return
	}

	d := v.Decision()
	switch d {
	case authz.Authorized:
		response.Success[any](c, http.StatusOK, gin.H{"decision": d.String()}, "authorized", nil)
	case authz.Denied:
		response.Success[any](c, http.StatusOK, gin.H{"decision": d.String(), "redirect": h.LoginPath}, "denied", nil)
	default:
		// dropped without a decision; the caller is gone
		c.Abort()
	}
}

// Entry GET /admin describes the login form. A caller who already holds an
// admin session is sent on to the dashboard.
func (h *AdminAuthHandler) Entry(c *gin.Context) {
	reqCtx := c.Request.Context()
	res := h.Gate.Check(session.WithToken(reqCtx, middleware.AccessToken(c)))
	if reqCtx.Err() != nil {
		c.Abort()
		return
	}
	if res.Decision == authz.Authorized {
		c.Redirect(http.StatusSeeOther, h.DashboardPath)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{
		"login": gin.H{
			"method": http.MethodPost,
			"action": "/api/admin/login",
			"fields": []string{"email", "password"},
		},
	}, "admin sign in", nil)
}
