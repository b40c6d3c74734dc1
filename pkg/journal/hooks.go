// Package journal fans out label-generation events to observer hooks. It
// exists so collaborators can audit which labels a run produced without the
// labeling core knowing anything about their sinks.
package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Verbs emitted by the labeling core.
const (
	VerbScopeEntered   = "scope.entered"
	VerbLabelGenerated = "label.generated"
)

// Event describes one labeling occurrence. IDs are stringly-typed UUIDs so
// call sites are not coupled to a specific UUID package.
type Event struct {
	ID         string
	Verb       string
	Label      string
	Scope      string
	Path       []string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Hook receives normalized label events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []Hook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify normalizes the event and forwards it to all hooks, returning a
// joined error if any fail. Events without a verb or label are dropped.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}

	normalized := NormalizeEvent(event)
	if normalized.Verb == "" || normalized.Label == "" {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// NormalizeEvent trims whitespace, clones the path and metadata, and fills in
// a UUID and timestamp when absent.
func NormalizeEvent(event Event) Event {
	normalized := event
	normalized.Verb = strings.TrimSpace(event.Verb)
	normalized.Label = strings.TrimSpace(event.Label)
	normalized.Scope = strings.TrimSpace(event.Scope)
	if len(event.Path) > 0 {
		normalized.Path = append([]string{}, event.Path...)
	} else {
		normalized.Path = nil
	}
	normalized.Metadata = cloneMap(event.Metadata)
	if normalized.ID == "" {
		normalized.ID = uuid.NewString()
	}
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
