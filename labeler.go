package labels

import (
	"context"
	"strings"

	"github.com/goliatone/go-labels/pkg/journal"
)

// Labeler bundles the mutable state behind label generation: the counter
// registry and the active-scope stack, plus the logger and journal hooks that
// observe them. A process-wide default instance backs the package-level
// functions; construct separate instances for isolated numbering (one per
// logical task when adapting to concurrency, since nothing here locks).
type Labeler struct {
	counters *Counters
	scopes   *ContextStack[*Scope]
	cfg      labelerConfig
}

type labelerConfig struct {
	counters *Counters
	logger   ScopeLogger
	hooks    journal.Hooks
}

// LabelerOption configures a Labeler on construction.
type LabelerOption func(*labelerConfig)

// WithCounters supplies a counter registry, e.g. one shared between labelers.
func WithCounters(counters *Counters) LabelerOption {
	return func(cfg *labelerConfig) {
		cfg.counters = counters
	}
}

// WithJournalHooks attaches journal hooks notified on scope entry and label
// generation. Nil entries are dropped.
func WithJournalHooks(hooks journal.Hooks) LabelerOption {
	normalized := make(journal.Hooks, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			normalized = append(normalized, hook)
		}
	}
	return func(cfg *labelerConfig) {
		if len(normalized) == 0 {
			cfg.hooks = nil
			return
		}
		cfg.hooks = normalized
	}
}

// New constructs a Labeler with fresh state.
func New(opts ...LabelerOption) *Labeler {
	cfg := labelerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	counters := cfg.counters
	if counters == nil {
		counters = NewCounters()
	}
	return &Labeler{
		counters: counters,
		scopes:   NewContextStack[*Scope](),
		cfg:      cfg,
	}
}

var defaultLabeler = New()

// Default returns the process-wide Labeler used by the package-level
// functions.
func Default() *Labeler {
	return defaultLabeler
}

// ResetDefault discards all counters and active scopes on the default
// Labeler. Intended for test isolation so counters do not leak across cases.
func ResetDefault() {
	defaultLabeler.Reset()
}

// Reset discards every counter and any active scopes.
func (lb *Labeler) Reset() {
	lb.counters.ResetAll()
	lb.scopes.Reset()
}

// Counters exposes the underlying counter registry.
func (lb *Labeler) Counters() *Counters {
	return lb.counters
}

// UID returns the next unique id for namespace. An empty namespace means
// DefaultNamespace.
func (lb *Labeler) UID(namespace string) int {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return lb.counters.Next(namespace)
}

// ResetUID resets the counter for namespace. An empty namespace means
// DefaultNamespace.
func (lb *Labeler) ResetUID(namespace string) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	lb.counters.Reset(namespace)
}

// ActiveScopes returns the currently entered scopes, outermost first.
// Introspection only.
func (lb *Labeler) ActiveScopes() []*Scope {
	return lb.scopes.Snapshot(labelNamespaceKey)
}

func (lb *Labeler) logger() ScopeLogger {
	if lb.cfg.logger != nil {
		return lb.cfg.logger
	}
	return stdScopeLogger{}
}

// notify forwards a label event to the journal hooks. Hook failures are
// logged, never surfaced: observation must not break generation.
func (lb *Labeler) notify(verb string, path []string) {
	if !lb.cfg.hooks.Enabled() {
		return
	}
	event := journal.Event{
		Verb:  verb,
		Label: strings.Join(path, Separator),
		Path:  path,
	}
	if len(path) > 1 {
		event.Scope = strings.Join(path[:len(path)-1], Separator)
	}
	if err := lb.cfg.hooks.Notify(context.Background(), event); err != nil {
		lb.logger().LogScopeEvent(ScopeLogEvent{
			Message: "journal hook failed: " + err.Error(),
			Scope:   event.Scope,
			Warning: true,
		})
	}
}
