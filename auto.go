package labels

import (
	"fmt"

	"github.com/goliatone/go-labels/pkg/journal"
)

type autoConfig struct {
	name     string
	hasName  bool
	label    Label
	hasLabel bool
	scope    *Scope
	hasScope bool
}

// AutoOption configures a single Auto call. The options replace the
// original's one polymorphic argument with explicit dispatch: WithName for a
// plain segment, FromLabel for an already-generated label, InScope for an
// explicit scope.
type AutoOption func(*autoConfig)

// WithName supplies the label name. Must be a valid path segment.
func WithName(name string) AutoOption {
	return func(cfg *autoConfig) {
		cfg.name = name
		cfg.hasName = true
	}
}

// FromLabel supplies a label that Auto passes through unchanged, making Auto
// idempotent on its own output.
func FromLabel(l Label) AutoOption {
	return func(cfg *autoConfig) {
		cfg.label = l
		cfg.hasLabel = true
	}
}

// InScope generates the label under an explicit scope instead of the nearest
// active one. The scope must already be entered.
func InScope(scope *Scope) AutoOption {
	return func(cfg *autoConfig) {
		cfg.scope = scope
		cfg.hasScope = true
	}
}

// Auto generates a formatted, reproducible label on the default Labeler.
func Auto(opts ...AutoOption) (Label, error) {
	return Default().Auto(opts...)
}

// Auto generates a formatted, reproducible label.
//
// When FromLabel is given the label is returned as is. When InScope is given
// the scope's path is the prefix and a missing name is drawn from the scope's
// counter. Otherwise Auto brackets a transient scope around the call: the
// scope is entered just long enough to resolve a path against the nearest
// active parent (or the global fallback, with a warning, when there is no
// name and no parent) and exited before returning. The transient entry still
// resets the counter at the resulting path, exactly as a named scope entry
// would.
func (lb *Labeler) Auto(opts ...AutoOption) (Label, error) {
	cfg := autoConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.hasLabel {
		return cfg.label, nil
	}

	if cfg.hasName {
		if err := ValidateName(cfg.name); err != nil {
			return Label{}, err
		}
	}

	if cfg.hasScope {
		return lb.autoInScope(cfg)
	}

	transient := &Scope{labeler: lb, basename: cfg.name}
	var generated Label
	err := transient.Do(func() error {
		l, labelErr := transient.Label()
		if labelErr != nil {
			return labelErr
		}
		generated = l
		return nil
	})
	if err != nil {
		return Label{}, err
	}
	lb.notify(journal.VerbLabelGenerated, generated.Parts())
	return generated, nil
}

func (lb *Labeler) autoInScope(cfg autoConfig) (Label, error) {
	if cfg.scope == nil {
		return Label{}, ErrNilScope
	}
	if !cfg.scope.Entered() {
		return Label{}, fmt.Errorf("%w: %q", ErrScopeNotEntered, cfg.scope.Basename())
	}
	name := cfg.name
	if !cfg.hasName {
		next, err := cfg.scope.NextLabel()
		if err != nil {
			return Label{}, err
		}
		name = next
	}
	generated := LabelFromParts(append(cfg.scope.Path(), name))
	lb.notify(journal.VerbLabelGenerated, generated.Parts())
	return generated, nil
}
