package labels

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELSelectorOption configures the CEL selector.
type CELSelectorOption func(*celSelector)

// CELWithProgramCache wires a ProgramCache into the CEL selector.
func CELWithProgramCache(cache ProgramCache) CELSelectorOption {
	return func(s *celSelector) {
		s.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL selector.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELSelectorOption {
	return func(s *celSelector) {
		if registry == nil {
			return
		}
		s.registry = registry.Clone()
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celSelector struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELSelector constructs a Selector backed by cel-go.
func NewCELSelector(opts ...CELSelectorOption) Selector {
	s := &celSelector{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *celSelector) engineName() string { return "cel" }

func (s *celSelector) Match(ctx MatchContext, expression string) (bool, error) {
	if expression == "" {
		return false, wrapSelectorError("cel", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	program, err := s.loadOrCompile(expression)
	if err != nil {
		return false, wrapMatchError("cel", expression, ctx.Label.String(), err)
	}
	out, _, err := program.program.Eval(s.activation(ctx))
	if err != nil {
		return false, wrapMatchError("cel", expression, ctx.Label.String(), err)
	}
	matched, err := coerceBool(out.Value())
	return matched, wrapMatchError("cel", expression, ctx.Label.String(), err)
}

func (s *celSelector) Compile(expression string, _ ...CompileOption) (CompiledSelector, error) {
	if expression == "" {
		return nil, wrapSelectorError("cel", fmt.Errorf("expression must not be empty"))
	}
	if _, err := s.loadOrCompile(expression); err != nil {
		return nil, wrapMatchError("cel", expression, "", err)
	}
	return &celCompiledSelector{
		selector:   s,
		expression: expression,
	}, nil
}

func (s *celSelector) loadOrCompile(expression string) (*celProgram, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := s.buildEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if s.cache != nil {
		s.cache.Set(expression, bundle)
	}
	return bundle, nil
}

func (s *celSelector) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("label", celgo.StringType),
		celgo.Variable("parts", celgo.ListType(celgo.StringType)),
		celgo.Variable("name", celgo.StringType),
		celgo.Variable("scope", celgo.StringType),
		celgo.Variable("depth", celgo.IntType),
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("metadata", celgo.DynType),
	}
	if s.registry != nil {
		opts = append(opts, celgo.Function("call", celgo.Overload(
			"call_string_dyn",
			[]*celgo.Type{celgo.StringType, celgo.DynType},
			celgo.DynType,
			celgo.FunctionBinding(s.callBinding()),
		)))
	}
	return celgo.NewEnv(opts...)
}

func (s *celSelector) activation(ctx MatchContext) map[string]any {
	activation := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	for key, value := range ctx.labelBinding() {
		activation[key] = value
	}
	if s.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return s.registry.Call(name, arguments...)
		}
	}
	return activation
}

type celCompiledSelector struct {
	selector   *celSelector
	expression string
}

func (c *celCompiledSelector) Match(ctx MatchContext) (bool, error) {
	if c.selector == nil {
		return false, wrapSelectorError("cel", fmt.Errorf("compiled selector missing engine"))
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	program, err := c.selector.loadOrCompile(c.expression)
	if err != nil {
		return false, wrapMatchError("cel", c.expression, ctx.Label.String(), err)
	}
	out, _, err := program.program.Eval(c.selector.activation(ctx))
	if err != nil {
		return false, wrapMatchError("cel", c.expression, ctx.Label.String(), err)
	}
	matched, err := coerceBool(out.Value())
	return matched, wrapMatchError("cel", c.expression, ctx.Label.String(), err)
}

func (s *celSelector) callBinding() func(...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if s.registry == nil {
			return types.NewErr("labels: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("labels: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("labels: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := s.registry.Call(name, args...)
		if err != nil {
			return types.NewErr(err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
