package labels

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprSelectorOption configures an expr selector instance.
type ExprSelectorOption func(*exprSelector)

// ExprWithProgramCache wires a ProgramCache into the expr selector.
func ExprWithProgramCache(cache ProgramCache) ExprSelectorOption {
	return func(s *exprSelector) {
		s.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr selector.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprSelectorOption {
	return func(s *exprSelector) {
		if registry == nil {
			return
		}
		s.registry = registry.Clone()
	}
}

// exprSelector matches labels using github.com/expr-lang/expr.
type exprSelector struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprSelector constructs a Selector backed by expr-lang/expr.
func NewExprSelector(opts ...ExprSelectorOption) Selector {
	s := &exprSelector{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *exprSelector) engineName() string { return "expr" }

// Match compiles and runs expression against ctx.Label.
func (s *exprSelector) Match(ctx MatchContext, expression string) (bool, error) {
	if expression == "" {
		return false, wrapSelectorError("expr", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	env := s.environment(ctx)
	if s.cache == nil {
		result, err := exprlang.Eval(expression, env)
		if err != nil {
			return false, wrapMatchError("expr", expression, ctx.Label.String(), err)
		}
		matched, err := coerceBool(result)
		return matched, wrapMatchError("expr", expression, ctx.Label.String(), err)
	}
	program, err := s.loadOrCompile(expression)
	if err != nil {
		return false, err
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return false, wrapMatchError("expr", expression, ctx.Label.String(), err)
	}
	matched, err := coerceBool(result)
	return matched, wrapMatchError("expr", expression, ctx.Label.String(), err)
}

// Compile returns a compiled selector evaluated per invocation.
func (s *exprSelector) Compile(expression string, _ ...CompileOption) (CompiledSelector, error) {
	if expression == "" {
		return nil, wrapSelectorError("expr", fmt.Errorf("expression must not be empty"))
	}
	program, err := s.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledSelector{
		selector:   s,
		program:    program,
		expression: expression,
	}, nil
}

func (s *exprSelector) loadOrCompile(expression string) (*exprvm.Program, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range s.registryNames() {
		fn := s.registryFunction(name)
		options = append(options, exprlang.Function(name, fn))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapMatchError("expr", expression, "", err)
	}
	if s.cache != nil {
		s.cache.Set(expression, program)
	}
	return program, nil
}

type exprCompiledSelector struct {
	selector   *exprSelector
	program    *exprvm.Program
	expression string
}

func (c *exprCompiledSelector) Match(ctx MatchContext) (bool, error) {
	if c.selector == nil {
		return false, wrapSelectorError("expr", fmt.Errorf("compiled selector missing engine"))
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	if c.program == nil {
		return c.selector.Match(ctx, c.expression)
	}
	env := c.selector.environment(ctx)
	result, err := exprlang.Run(c.program, env)
	if err != nil {
		return false, wrapMatchError("expr", c.expression, ctx.Label.String(), err)
	}
	matched, err := coerceBool(result)
	return matched, wrapMatchError("expr", c.expression, ctx.Label.String(), err)
}

func (s *exprSelector) environment(ctx MatchContext) map[string]any {
	env := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	for key, value := range ctx.labelBinding() {
		env[key] = value
	}
	if s.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return s.registry.Call(name, arguments...)
		}
		for _, name := range s.registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return s.registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (s *exprSelector) registryNames() []string {
	if s == nil || s.registry == nil {
		return nil
	}
	return s.registry.Names()
}

func (s *exprSelector) registryFunction(name string) func(...any) (any, error) {
	if s == nil || s.registry == nil {
		return nil
	}
	return func(arguments ...any) (any, error) {
		return s.registry.Call(name, arguments...)
	}
}
