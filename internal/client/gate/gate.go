// Package gate decides which command stack the client shows and runs the
// startup policy once.
package gate

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/raisineat/internal/client/config"
	"github.com/dmitrijs2005/raisineat/internal/client/session"
	"github.com/dmitrijs2005/raisineat/internal/logging"
)

// Screen is what the client renders for a session state.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenAuth
	ScreenDashboard
)

func (s Screen) String() string {
	switch s {
	case ScreenAuth:
		return "auth"
	case ScreenDashboard:
		return "dashboard"
	default:
		return "loading"
	}
}

// Resolve maps a snapshot to its screen. It has no side effects.
func Resolve(snap session.Snapshot) Screen {
	switch snap.State() {
	case session.StateAuthenticated:
		return ScreenDashboard
	case session.StateUnauthenticated:
		return ScreenAuth
	default:
		return ScreenLoading
	}
}

// Session is what the gate reads and drives.
type Session interface {
	Snapshot() session.Snapshot
	Subscribe() (<-chan struct{}, func())
	Restore(ctx context.Context)
}

// AutoLogin is the auto-login entry point.
type AutoLogin interface {
	PerformAutoLogin(ctx context.Context) (bool, error)
}

type Gate struct {
	sess   Session
	auto   AutoLogin
	policy config.Policy
	logger logging.Logger

	once sync.Once
}

// New builds a gate. auto may be nil with config.PolicyRestore.
func New(sess Session, auto AutoLogin, policy config.Policy, logger logging.Logger) *Gate {
	if logger == nil {
		logger = logging.Nop()
	}
	if policy == "" {
		policy = config.PolicyRestore
	}
	return &Gate{sess: sess, auto: auto, policy: policy, logger: logger.With("component", "gate")}
}

// Mount runs the startup policy on the first call, only if the session is
// not initialized yet, and returns the resulting screen. Later calls only
// resolve the screen.
func (g *Gate) Mount(ctx context.Context) Screen {
	g.once.Do(func() {
		if g.sess.Snapshot().IsInitialized {
			return
		}
		g.startup(ctx)
	})
	return g.Screen()
}

// The two policies run one after the other, never concurrently. Restore is
// a no-op once auto-login has initialized the session.
func (g *Gate) startup(ctx context.Context) {
	if g.policy == config.PolicyAutoLogin && g.auto != nil {
		ok, err := g.auto.PerformAutoLogin(ctx)
		switch {
		case err != nil:
			g.logger.Info(ctx, "auto login at startup failed", "error", err)
		case !ok:
			g.logger.Debug(ctx, "no saved credentials, falling back to restore")
		}
	}
	g.sess.Restore(ctx)
}

// Screen resolves the current screen.
func (g *Gate) Screen() Screen {
	return Resolve(g.sess.Snapshot())
}

// Watch calls fn with the current screen and then with every new one
// until ctx is done.
func (g *Gate) Watch(ctx context.Context, fn func(Screen)) {
	ch, stop := g.sess.Subscribe()
	defer stop()

	last := g.Screen()
	fn(last)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			if s := g.Screen(); s != last {
				last = s
				fn(s)
			}
		}
	}
}
