// Package commands implements every ephem subcommand plus the Runtime
// bundle they share.
package commands

import (
	"context"

	"github.com/kepler-works/ephem/internal/core/config"
	"github.com/kepler-works/ephem/internal/core/logger"
	"github.com/kepler-works/ephem/internal/core/state"
)

type contextKey string

const runtimeContextKey contextKey = "ephem.runtime"

// GlobalFlags carries the parsed persistent flags into subcommands.
type GlobalFlags struct {
	Kernel     string
	Debug      bool
	JSONOutput bool
}

// Runtime bundles the dependencies a subcommand needs: loaded config,
// logger, and the open state DB. Root wiring builds one per invocation
// and hands it down through the command context.
type Runtime struct {
	Config *config.Config
	Log    *logger.Logger
	State  *state.DB
	Flags  GlobalFlags
}

// NewContext returns a context carrying rt.
func NewContext(parent context.Context, rt *Runtime) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, runtimeContextKey, rt)
}

// FromContext extracts the Runtime. A missing Runtime means the
// command skipped root's PersistentPreRunE, which is a wiring bug, so
// it panics rather than limping on.
func FromContext(ctx context.Context) *Runtime {
	rt, ok := ctx.Value(runtimeContextKey).(*Runtime)
	if !ok || rt == nil {
		panic("ephem: Runtime not found in command context")
	}
	return rt
}
