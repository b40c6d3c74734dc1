package labels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-labels/pkg/journal"
)

func TestLabelerReset(t *testing.T) {
	lb := New()
	lb.UID("n")
	lb.UID("n")
	scope, _ := lb.NewScope("model")
	scope.Enter()

	lb.Reset()

	require.Nil(t, lb.Current())
	require.Equal(t, 1, lb.UID("n"))
}

func TestLabelerWithSharedCounters(t *testing.T) {
	counters := NewCounters()
	a := New(WithCounters(counters))
	b := New(WithCounters(counters))

	require.Equal(t, 1, a.UID("n"))
	require.Equal(t, 2, b.UID("n"))
}

func TestLabelerJournalHooks(t *testing.T) {
	var events []journal.Event
	lb := New(WithJournalHooks(journal.Hooks{
		journal.HookFunc(func(_ context.Context, event journal.Event) error {
			events = append(events, event)
			return nil
		}),
		nil, // dropped
	}))

	scope, err := lb.NewScope("model")
	require.NoError(t, err)
	err = scope.Do(func() error {
		_, err := lb.Auto()
		return err
	})
	require.NoError(t, err)

	require.Len(t, events, 3)

	require.Equal(t, journal.VerbScopeEntered, events[0].Verb)
	require.Equal(t, "model", events[0].Label)
	require.NotEmpty(t, events[0].ID)
	require.False(t, events[0].OccurredAt.IsZero())

	// Auto brackets a transient scope, so its entry is journaled too.
	require.Equal(t, journal.VerbScopeEntered, events[1].Verb)
	require.Equal(t, "model/1", events[1].Label)

	require.Equal(t, journal.VerbLabelGenerated, events[2].Verb)
	require.Equal(t, "model/1", events[2].Label)
	require.Equal(t, "model", events[2].Scope)
	require.Equal(t, []string{"model", "1"}, events[2].Path)
}

func TestLabelerJournalHookFailureIsLoggedNotFatal(t *testing.T) {
	var warned bool
	lb := New(
		WithLogger(ScopeLoggerFunc(func(event ScopeLogEvent) {
			if event.Warning {
				warned = true
			}
		})),
		WithJournalHooks(journal.Hooks{
			journal.HookFunc(func(context.Context, journal.Event) error {
				return context.Canceled
			}),
		}),
	)

	scope, err := lb.NewScope("model")
	require.NoError(t, err)
	require.NoError(t, scope.Do(func() error { return nil }))
	require.True(t, warned, "hook failure should be logged as a warning")
}
