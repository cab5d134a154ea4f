package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/authz"
	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	repo "github.com/rabnifoundation/rabni-api/internal/domain/repository"
	"github.com/rabnifoundation/rabni-api/internal/session"
	"github.com/rabnifoundation/rabni-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Audit actions.
const (
	AuditLogin       = "login"
	AuditLoginDenied = "login_denied"
	AuditLogout      = "logout"
	AuditGateDenied  = "gate_denied"
)

// Authorizer runs the admin gate against the session carried by ctx.
type Authorizer interface {
	Check(ctx context.Context) authz.Result
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// RequestMeta is what the audit trail records about the caller.
type RequestMeta struct {
	IP        string
	UserAgent string
	Path      string
}

type LoginResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type AdminService struct {
	Users      repo.UserRepository
	Sessions   session.Store
	JWT        *helpers.JWTManager
	Gate       Authorizer
	Audit      repo.AuditRepository
	SessionTTL time.Duration
	Logger     *logrus.Logger
}

func NewAdminService(users repo.UserRepository, sessions session.Store, jwt *helpers.JWTManager, gate Authorizer, audit repo.AuditRepository, sessionTTL time.Duration, logger *logrus.Logger) *AdminService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AdminService{
		Users:      users,
		Sessions:   sessions,
		JWT:        jwt,
		Gate:       gate,
		Audit:      audit,
		SessionTTL: sessionTTL,
		Logger:     logger,
	}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AdminService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).Warn("user lookup failed")
		}
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login signs the user in and then runs the admin gate on the fresh session.
// Anyone the gate does not authorize is signed straight back out and gets
// the same error as a wrong password.
func (s *AdminService) Login(ctx context.Context, email, password string, meta RequestMeta) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		s.record(ctx, repo.AuditEntry{Email: email, Action: AuditLoginDenied, Metadata: map[string]any{"cause": "credentials"}}, meta)
		return nil, TokenPair{}, err
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if s.Gate == nil || s.Gate.Check(session.WithToken(ctx, pair.AccessToken)).Decision != authz.Authorized {
		s.revoke(ctx, u.ID)
		s.record(ctx, repo.AuditEntry{SubjectID: u.ID, Email: u.Email, Action: AuditLoginDenied, Metadata: map[string]any{"cause": "role"}}, meta)
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	s.record(ctx, repo.AuditEntry{SubjectID: u.ID, Email: u.Email, Action: AuditLogin}, meta)
	return &LoginResponse{UserID: u.ID, Email: u.Email, Name: u.Name}, pair, nil
}

// issueTokens generates access/refresh tokens and records a session in the store.
func (s *AdminService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		}
		return TokenPair{}, err
	}
	fields := map[string]any{
		"user_id":    u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"sid":        sid,
		"created_at": nowRFC3339(),
	}
	if err := s.Sessions.Save(ctx, u.ID, fields, s.SessionTTL); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("session save failed")
		}
		return TokenPair{}, err
	}
	return pair, nil
}

func (s *AdminService) sign(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens. The refresh token must
// belong to the session currently held in the store.
func (s *AdminService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	data, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	sid := uuid.NewString()
	pair, err := s.sign(claims.UserID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if err := s.Sessions.Save(ctx, claims.UserID, map[string]any{"sid": sid, "updated_at": nowRFC3339()}, s.SessionTTL); err != nil {
		return TokenPair{}, "", err
	}
	return pair, claims.UserID, nil
}

// Logout drops the server-side session named by either token. It never
// fails; a caller without a valid token is simply signed out client-side.
func (s *AdminService) Logout(ctx context.Context, accessToken, refreshToken string, meta RequestMeta) {
	uid := ""
	if c, err := s.JWT.ParseAccessToken(accessToken); err == nil {
		uid = c.UserID
	} else if c, err := s.JWT.ParseRefreshToken(refreshToken); err == nil {
		uid = c.UserID
	}
	if uid == "" {
		return
	}
	s.revoke(ctx, uid)
	s.record(ctx, repo.AuditEntry{SubjectID: uid, Action: AuditLogout}, meta)
}

// RecordDenial appends a gate denial to the audit trail.
func (s *AdminService) RecordDenial(ctx context.Context, meta RequestMeta) {
	s.record(ctx, repo.AuditEntry{Action: AuditGateDenied, Metadata: map[string]any{"path": meta.Path}}, meta)
}

func (s *AdminService) revoke(ctx context.Context, uid string) {
	if err := s.Sessions.Delete(ctx, uid); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", uid).Warn("session revoke failed")
	}
}

func (s *AdminService) record(ctx context.Context, e repo.AuditEntry, meta RequestMeta) {
	if s.Audit == nil {
		return
	}
	e.IP = meta.IP
	e.UserAgent = meta.UserAgent
	if err := s.Audit.Insert(ctx, e); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("action", e.Action).Warn("audit insert failed")
	}
}
