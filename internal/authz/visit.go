package authz

import (
	"context"
	"sync"
	"sync/atomic"
)

// Visit is a single asynchronous authorization attempt bound to one visit of
// the admin area. Close detaches it; after Close returns, apply never runs.
type Visit struct {
	state  atomic.Int32
	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
	done   chan struct{}
}

// Begin starts authorizing in the background and calls apply once with the
// terminal decision, unless ctx is cancelled or the visit is closed first.
// apply runs under the visit's lock and must not call Close.
func (g *Gate) Begin(ctx context.Context, apply func(Decision)) *Visit {
	vctx, cancel := context.WithCancel(ctx)
	v := &Visit{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(v.done)
		defer cancel()

		d := g.Authorize(vctx)

		v.mu.Lock()
		defer v.mu.Unlock()
		if v.closed || vctx.Err() != nil {
			return
		}
		v.state.Store(int32(d))
		if apply != nil {
			apply(d)
		}
	}()
	return v
}

// Decision reports Pending until the attempt resolves.
func (v *Visit) Decision() Decision {
	return Decision(v.state.Load())
}

// Done is closed once the attempt has finished, applied or not.
func (v *Visit) Done() <-chan struct{} {
	return v.done
}

// Wait blocks until the attempt finishes and returns the applied decision.
// A visit that was closed before resolving stays Pending.
func (v *Visit) Wait() Decision {
	<-v.done
	return v.Decision()
}

// Close cancels an in-flight attempt and drops its result.
func (v *Visit) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.cancel()
}
