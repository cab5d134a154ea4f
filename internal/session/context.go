package session

import "context"

type tokenKey struct{}

// WithToken attaches the caller's access token to ctx. The resolver reads the
// ambient session from here instead of from any process-wide state.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the access token attached to ctx, if any.
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}
