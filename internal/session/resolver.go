package session

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/authz"
	"github.com/rabnifoundation/rabni-api/pkg/helpers"
)

type TokenParser interface {
	ParseAccessToken(token string) (*helpers.Claims, error)
}

// Resolver turns the ambient access token into a session snapshot. A token
// only counts while its session id matches the one held in the store, so
// logout and refresh rotation revoke older tokens immediately.
type Resolver struct {
	Tokens TokenParser
	Store  Store
	Logger *logrus.Logger
}

func NewResolver(tokens TokenParser, store Store, logger *logrus.Logger) *Resolver {
	return &Resolver{Tokens: tokens, Store: store, Logger: logger}
}

func (r *Resolver) CurrentSession(ctx context.Context) (authz.Session, bool) {
	token := TokenFrom(ctx)
	if token == "" || r.Tokens == nil || r.Store == nil {
		return authz.Session{}, false
	}
	claims, err := r.Tokens.ParseAccessToken(token)
	if err != nil {
		return authz.Session{}, false
	}
	data, err := r.Store.Get(ctx, claims.UserID)
	if err != nil {
		if r.Logger != nil {
			r.Logger.WithError(err).WithField("user_id", claims.UserID).Warn("session lookup failed")
		}
		return authz.Session{}, false
	}
	if len(data) == 0 || data["sid"] != claims.SessionID {
		return authz.Session{}, false
	}
	return authz.Session{SubjectID: claims.UserID, SessionID: claims.SessionID}, true
}

var _ authz.SessionResolver = (*Resolver)(nil)
