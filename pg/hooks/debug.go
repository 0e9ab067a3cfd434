// Package hooks contains bun query hooks.
package hooks

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rise-and-shine/foodcatalog/logger"
	"github.com/uptrace/bun"
)

var _ bun.QueryHook = (*DebugHook)(nil)

// DebugHook logs bun queries through the service logger.
// Failed and slow queries are always reported; successful ones only in verbose mode.
type DebugHook struct {
	enabled            bool
	verbose            bool
	slowQueryThreshold time.Duration
	log                logger.Logger
}

// DebugHookOption configures a DebugHook.
type DebugHookOption func(*DebugHook)

// NewDebugHook creates a new query hook with the provided options.
// By default the hook is enabled, verbose, and reports queries slower than 100ms.
func NewDebugHook(opts ...DebugHookOption) *DebugHook {
	hook := &DebugHook{
		enabled:            true,
		verbose:            true,
		slowQueryThreshold: 100 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(hook)
	}

	if hook.log == nil {
		hook.log = logger.Named("pg.query")
	}

	return hook
}

// WithEnabled sets whether the query hook is enabled.
func WithEnabled(enabled bool) DebugHookOption {
	return func(h *DebugHook) {
		h.enabled = enabled
	}
}

// WithVerbose sets whether successful queries are logged at debug level.
func WithVerbose(verbose bool) DebugHookOption {
	return func(h *DebugHook) {
		h.verbose = verbose
	}
}

// WithSlowQueryThreshold sets the duration after which a query is logged at warn level.
// Zero disables slow query detection.
func WithSlowQueryThreshold(threshold time.Duration) DebugHookOption {
	return func(h *DebugHook) {
		h.slowQueryThreshold = threshold
	}
}

// WithLogger replaces the logger entries are written to.
func WithLogger(l logger.Logger) DebugHookOption {
	return func(h *DebugHook) {
		h.log = l
	}
}

func (h *DebugHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *DebugHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if !h.enabled {
		return
	}

	duration := time.Since(event.StartTime)

	// no rows and finished transactions are regular outcomes, not failures
	isNoRows := errors.Is(event.Err, sql.ErrNoRows)
	failed := event.Err != nil && !isNoRows && !errors.Is(event.Err, sql.ErrTxDone)
	slow := h.slowQueryThreshold > 0 && duration >= h.slowQueryThreshold

	if !h.verbose && !failed && !slow {
		return
	}

	entry := h.log.
		WithContext(ctx).
		With(
			"query", strings.ReplaceAll(event.Query, `"`, ""),
			"duration", duration.Round(time.Microsecond),
		)

	msg := "query " + event.Operation()
	switch {
	case failed:
		entry.With("error", event.Err).Error(msg)
	case slow:
		entry.Warn("slow " + msg)
	default:
		entry.Debug(msg)
	}
}
