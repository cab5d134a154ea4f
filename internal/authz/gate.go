package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
)

// Decision is the outcome of one authorization attempt for the admin area.
// Pending is the zero value; Authorized and Denied are terminal.
type Decision int32

const (
	Pending Decision = iota
	Authorized
	Denied
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	default:
		return "pending"
	}
}

// DefaultLookupTimeout bounds a whole authorization attempt.
const DefaultLookupTimeout = 3 * time.Second

// Session is the read-only snapshot of the current identity.
type Session struct {
	SubjectID string
	SessionID string
}

// SessionResolver returns the ambient session, or false when there is none.
// Implementations collapse every internal fault to false.
type SessionResolver interface {
	CurrentSession(ctx context.Context) (Session, bool)
}

// RoleVerifier returns the role held by a subject.
// Implementations collapse every internal fault to entity.RoleAbsent.
type RoleVerifier interface {
	RoleOf(ctx context.Context, subjectID string) entity.Role
}

// Result carries the decision and, when authorized, whose session it was.
type Result struct {
	Decision  Decision
	SubjectID string
}

const (
	reasonAdmin     = "admin"
	reasonNoSession = "no_session"
	reasonNoRole    = "no_role"
	reasonNotAdmin  = "not_admin"
	reasonTimeout   = "timeout"
	reasonFault     = "fault"
	reasonCancelled = "cancelled"
)

var errPanicked = errors.New("collaborator panicked")

// Gate decides whether the current session may enter the admin area.
// It holds no per-visit state and is safe for concurrent use.
type Gate struct {
	sessions SessionResolver
	roles    RoleVerifier
	timeout  time.Duration
	logger   *logrus.Logger
	metrics  *Metrics
}

type Option func(*Gate)

func WithTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithLogger(l *logrus.Logger) Option { return func(g *Gate) { g.logger = l } }

func WithMetrics(m *Metrics) Option { return func(g *Gate) { g.metrics = m } }

func NewGate(sessions SessionResolver, roles RoleVerifier, opts ...Option) *Gate {
	g := &Gate{sessions: sessions, roles: roles, timeout: DefaultLookupTimeout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize runs one attempt and returns Authorized or Denied, never Pending.
func (g *Gate) Authorize(ctx context.Context) Decision {
	return g.Check(ctx).Decision
}

// Check is Authorize plus the subject of an authorized session.
func (g *Gate) Check(ctx context.Context) Result {
	res, reason := g.evaluate(ctx)
	g.metrics.observe(res.Decision, reason)
	if g.logger != nil && res.Decision == Denied {
		g.logger.WithField("reason", reason).Debug("admin gate denied")
	}
	return res
}

func (g *Gate) evaluate(ctx context.Context) (Result, string) {
	denied := Result{Decision: Denied}
	if ctx.Err() != nil {
		return denied, reasonCancelled
	}

	dctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type lookup struct {
		session Session
		ok      bool
	}
	s, err := await(dctx, func(c context.Context) lookup {
		sess, ok := g.sessions.CurrentSession(c)
		return lookup{session: sess, ok: ok}
	})
	if err != nil {
		return denied, g.reasonFor(ctx, err)
	}
	if !s.ok || s.session.SubjectID == "" {
		return denied, reasonNoSession
	}

	role, err := await(dctx, func(c context.Context) entity.Role {
		return g.roles.RoleOf(c, s.session.SubjectID)
	})
	if err != nil {
		return denied, g.reasonFor(ctx, err)
	}

	switch role {
	case entity.RoleAdmin:
		return Result{Decision: Authorized, SubjectID: s.session.SubjectID}, reasonAdmin
	case entity.RoleAbsent:
		return denied, reasonNoRole
	default:
		return denied, reasonNotAdmin
	}
}

func (g *Gate) reasonFor(parent context.Context, err error) string {
	switch {
	case errors.Is(err, errPanicked):
		if g.logger != nil {
			g.logger.WithError(err).Error("admin gate collaborator fault")
		}
		return reasonFault
	case parent.Err() != nil:
		return reasonCancelled
	default:
		return reasonTimeout
	}
}

// await runs fn on its own goroutine and gives up when ctx is done, so a
// collaborator that ignores its context cannot hold the caller. A result that
// lands after the deadline is discarded.
func await[T any](ctx context.Context, fn func(context.Context) T) (T, error) {
	type outcome struct {
		val T
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("%w: %v", errPanicked, r)}
			}
		}()
		ch <- outcome{val: fn(ctx)}
	}()

	var zero T
	select {
	case o := <-ch:
		if o.err != nil {
			return zero, o.err
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return o.val, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
