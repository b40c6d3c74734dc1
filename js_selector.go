//go:build js_match

package labels

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsSelector struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewJSSelector constructs a Selector backed by goja.
func NewJSSelector(opts ...JSSelectorOption) Selector {
	cfg := applyJSSelectorOptions(opts)
	return &jsSelector{
		cache:    cfg.cache,
		registry: cfg.registry,
	}
}

func (s *jsSelector) engineName() string { return "js" }

func (s *jsSelector) Match(ctx MatchContext, expression string) (bool, error) {
	if expression == "" {
		return false, wrapSelectorError("js", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	if s.cache == nil {
		return s.run(ctx, expression, nil)
	}
	program, err := s.loadOrCompile(expression)
	if err != nil {
		return false, wrapMatchError("js", expression, ctx.Label.String(), err)
	}
	return s.run(ctx, expression, program)
}

func (s *jsSelector) Compile(expression string, _ ...CompileOption) (CompiledSelector, error) {
	if expression == "" {
		return nil, wrapSelectorError("js", fmt.Errorf("expression must not be empty"))
	}
	program, err := s.loadOrCompile(expression)
	if err != nil {
		return nil, wrapMatchError("js", expression, "", err)
	}
	return &jsCompiledSelector{
		selector:   s,
		expression: expression,
		program:    program,
	}, nil
}

func (s *jsSelector) loadOrCompile(expression string) (*goja.Program, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", s.wrapExpression(expression), false)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(expression, program)
	}
	return program, nil
}

func (s *jsSelector) run(ctx MatchContext, expression string, program *goja.Program) (bool, error) {
	vm := goja.New()
	s.injectContext(vm, ctx)
	var value goja.Value
	var err error
	if program != nil {
		value, err = vm.RunProgram(program)
	} else {
		value, err = vm.RunString(s.wrapExpression(expression))
	}
	if err != nil {
		return false, wrapMatchError("js", expression, ctx.Label.String(), err)
	}
	matched, err := coerceBool(value.Export())
	return matched, wrapMatchError("js", expression, ctx.Label.String(), err)
}

func (s *jsSelector) injectContext(vm *goja.Runtime, ctx MatchContext) {
	vm.Set("now", ctx.timestamp())
	vm.Set("args", ctx.Args)
	vm.Set("metadata", ctx.Metadata)
	for key, value := range ctx.labelBinding() {
		vm.Set(key, value)
	}
	if s.registry != nil {
		vm.Set("call", func(name string, arguments ...any) (any, error) {
			return s.registry.Call(name, arguments...)
		})
		for _, name := range s.registry.Names() {
			fn := name
			vm.Set(fn, func(arguments ...any) (any, error) {
				return s.registry.Call(fn, arguments...)
			})
		}
	}
}

func (s *jsSelector) wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsCompiledSelector struct {
	selector   *jsSelector
	expression string
	program    *goja.Program
}

func (c *jsCompiledSelector) Match(ctx MatchContext) (bool, error) {
	if c.selector == nil {
		return false, wrapSelectorError("js", fmt.Errorf("compiled selector missing engine"))
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	return c.selector.run(ctx, c.expression, c.program)
}

func jsSelectorAvailable() bool {
	return true
}
