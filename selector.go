package labels

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoSelector indicates a Matcher was built without a selector engine.
var ErrNoSelector = errors.New("labels: selector not configured")

// MatchContext carries the inputs for evaluating a selector expression
// against one label.
type MatchContext struct {
	Label    Label
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx MatchContext) withDefaultNow() MatchContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx MatchContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx MatchContext) withDefaultMaps() MatchContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

// labelBinding exposes the label to expressions: the canonical string, its
// segments, the file/directory split, and the depth.
func (ctx MatchContext) labelBinding() map[string]any {
	return map[string]any{
		"label": ctx.Label.String(),
		"parts": ctx.Label.Parts(),
		"name":  ctx.Label.Name(),
		"scope": ctx.Label.Scope(),
		"depth": ctx.Label.Depth(),
	}
}

// Selector evaluates boolean expressions against labels. Selectors are the
// introspection counterpart to Auto: generation hands out hierarchical
// identifiers, a selector picks them back out of a collection.
type Selector interface {
	Match(ctx MatchContext, expression string) (bool, error)
	Compile(expression string, opts ...CompileOption) (CompiledSelector, error)
}

// CompiledSelector is a reusable compiled selector expression.
type CompiledSelector interface {
	Match(ctx MatchContext) (bool, error)
}

// CompileOption configures selector compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Matcher wraps a selector engine with timing and logging around every
// evaluation.
type Matcher struct {
	selector Selector
	cfg      matcherConfig
}

type matcherConfig struct {
	logger SelectorLogger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*matcherConfig)

// WithSelectorLogger attaches a selector logger to the Matcher.
func WithSelectorLogger(logger SelectorLogger) MatcherOption {
	return func(cfg *matcherConfig) {
		if logger == nil {
			cfg.logger = noopSelectorLogger{}
			return
		}
		cfg.logger = logger
	}
}

// NewMatcher wraps selector. A nil selector is reported on first use, not
// here, so matchers can be assembled before deciding the engine.
func NewMatcher(selector Selector, opts ...MatcherOption) *Matcher {
	cfg := matcherConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Matcher{selector: selector, cfg: cfg}
}

// Match evaluates expression against l.
func (m *Matcher) Match(l Label, expression string) (bool, error) {
	return m.MatchWith(MatchContext{Label: l}, expression)
}

// MatchWith evaluates expression using ctx, logging the attempt and its
// duration.
func (m *Matcher) MatchWith(ctx MatchContext, expression string) (bool, error) {
	if expression == "" {
		return false, fmt.Errorf("labels: expression must not be empty")
	}
	if m == nil || m.selector == nil {
		return false, ErrNoSelector
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	engine := selectorEngineName(m.selector)
	start := time.Now()
	matched, matchErr := m.selector.Match(ctx, expression)
	duration := time.Since(start)
	matchErr = wrapMatchError(engine, expression, ctx.Label.String(), matchErr)
	m.logger().LogMatch(SelectorLogEvent{
		Engine:   engine,
		Expr:     expression,
		Label:    ctx.Label.String(),
		Duration: duration,
		Err:      matchErr,
	})
	if matchErr != nil {
		return false, matchErr
	}
	return matched, nil
}

// Filter compiles expression once and returns the labels it matches, in
// order.
func (m *Matcher) Filter(expression string, candidates []Label) ([]Label, error) {
	if m == nil || m.selector == nil {
		return nil, ErrNoSelector
	}
	compiled, err := m.selector.Compile(expression)
	if err != nil {
		return nil, err
	}
	var matched []Label
	for _, candidate := range candidates {
		ok, err := compiled.Match(MatchContext{Label: candidate})
		if err != nil {
			return nil, wrapMatchError(selectorEngineName(m.selector), expression, candidate.String(), err)
		}
		if ok {
			matched = append(matched, candidate)
		}
	}
	return matched, nil
}

func (m *Matcher) logger() SelectorLogger {
	if m != nil && m.cfg.logger != nil {
		return m.cfg.logger
	}
	return noopSelectorLogger{}
}

type engineNamer interface {
	engineName() string
}

func selectorEngineName(selector Selector) string {
	if named, ok := selector.(engineNamer); ok {
		return named.engineName()
	}
	return "custom"
}

// coerceBool rejects any expression result that is not a plain boolean.
// Selectors answer membership questions; truthiness coercion would hide
// authoring mistakes.
func coerceBool(value any) (bool, error) {
	matched, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("labels: expression must evaluate to a boolean, got %T", value)
	}
	return matched, nil
}
