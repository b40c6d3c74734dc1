package labels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleLabels() []Label {
	return []Label{
		LabelFromParts([]string{"model", "1"}),
		LabelFromParts([]string{"model", "cell", "2"}),
		LabelFromParts([]string{"model", "foo"}),
		LabelFromParts([]string{"global", "1"}),
	}
}

func TestExprSelectorMatch(t *testing.T) {
	selector := NewExprSelector()

	matched, err := selector.Match(MatchContext{Label: LabelFromParts([]string{"model", "1"})}, `parts[0] == "model"`)
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = selector.Match(MatchContext{Label: LabelFromParts([]string{"global", "1"})}, `parts[0] == "model"`)
	require.NoError(t, err)
	require.False(t, matched)
}

func TestExprSelectorLabelBinding(t *testing.T) {
	selector := NewExprSelector()
	l := LabelFromParts([]string{"model", "cell", "2"})

	for _, expression := range []string{
		`label == "model/cell/2"`,
		`name == "2"`,
		`scope == "model/cell"`,
		`depth == 3`,
	} {
		matched, err := selector.Match(MatchContext{Label: l}, expression)
		require.NoError(t, err, expression)
		require.True(t, matched, expression)
	}
}

func TestExprSelectorNonBooleanResult(t *testing.T) {
	selector := NewExprSelector()
	_, err := selector.Match(MatchContext{Label: NewLabel("x")}, `depth`)
	require.Error(t, err)

	var matchErr *MatchError
	require.ErrorAs(t, err, &matchErr)
	require.Equal(t, "expr", matchErr.Engine)
}

func TestExprSelectorFunctionRegistry(t *testing.T) {
	registry := NewFunctionRegistry()
	require.NoError(t, registry.Register("rootIs", func(args ...any) (any, error) {
		if len(args) != 2 {
			return false, errors.New("rootIs wants (parts, root)")
		}
		parts, ok := args[0].([]string)
		if !ok || len(parts) == 0 {
			return false, nil
		}
		return parts[0] == args[1], nil
	}))

	selector := NewExprSelector(ExprWithFunctionRegistry(registry))
	matched, err := selector.Match(MatchContext{Label: LabelFromParts([]string{"model", "1"})}, `rootIs(parts, "model")`)
	require.NoError(t, err)
	require.True(t, matched)
}

func TestExprSelectorCompileUsesCache(t *testing.T) {
	cache := NewProgramCache(0, 0)
	selector := NewExprSelector(ExprWithProgramCache(cache))

	compiled, err := selector.Compile(`name == "1"`)
	require.NoError(t, err)

	_, ok := cache.Get(`name == "1"`)
	require.True(t, ok, "compiled program should be cached")

	matched, err := compiled.Match(MatchContext{Label: LabelFromParts([]string{"model", "1"})})
	require.NoError(t, err)
	require.True(t, matched)
}

func TestMatcherFilter(t *testing.T) {
	matcher := NewMatcher(NewExprSelector())

	matched, err := matcher.Filter(`scope startsWith "model"`, sampleLabels())
	require.NoError(t, err)
	require.Equal(t, []Label{
		LabelFromParts([]string{"model", "1"}),
		LabelFromParts([]string{"model", "cell", "2"}),
		LabelFromParts([]string{"model", "foo"}),
	}, matched)
}

func TestMatcherLogsEvaluations(t *testing.T) {
	var events []SelectorLogEvent
	matcher := NewMatcher(NewExprSelector(), WithSelectorLogger(SelectorLoggerFunc(func(event SelectorLogEvent) {
		events = append(events, event)
	})))

	matched, err := matcher.Match(LabelFromParts([]string{"model", "1"}), `depth == 2`)
	require.NoError(t, err)
	require.True(t, matched)

	require.Len(t, events, 1)
	require.Equal(t, "expr", events[0].Engine)
	require.Equal(t, "model/1", events[0].Label)
	require.NoError(t, events[0].Err)
}

func TestMatcherWithoutSelector(t *testing.T) {
	matcher := NewMatcher(nil)
	_, err := matcher.Match(NewLabel("x"), `true`)
	require.ErrorIs(t, err, ErrNoSelector)
}

func TestMatcherEmptyExpression(t *testing.T) {
	matcher := NewMatcher(NewExprSelector())
	_, err := matcher.Match(NewLabel("x"), "")
	require.Error(t, err)
}

func TestJSSelectorStubWithoutBuildTag(t *testing.T) {
	if jsSelectorAvailable() {
		t.Skip("built with js_match")
	}
	require.Nil(t, NewJSSelector())
}
