package labels

type jsSelectorConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// JSSelectorOption configures the JS selector.
type JSSelectorOption func(*jsSelectorConfig)

// JSWithProgramCache applies a ProgramCache to the JS selector.
func JSWithProgramCache(cache ProgramCache) JSSelectorOption {
	return func(cfg *jsSelectorConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS selector.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSSelectorOption {
	return func(cfg *jsSelectorConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyJSSelectorOptions(opts []JSSelectorOption) jsSelectorConfig {
	cfg := jsSelectorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
