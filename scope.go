package labels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-labels/pkg/journal"
)

// labelNamespaceKey is the fixed context-stack key under which active scopes
// are tracked.
const labelNamespaceKey = "label_namespace"

// GlobalNamespace is the root segment used when label generation has neither
// a name nor an active scope to work from.
const GlobalNamespace = "global"

// Scope is one node in a hierarchical naming tree. While entered, it supplies
// the "directory" prefix for generated labels and owns the counter that
// numbers its children. The analogy is a filesystem: a scope is a directory,
// a label is a file path.
//
// A scope starts unresolved: its full path is computed on first Enter from
// the nearest active parent scope (or the global fallback). Once resolved the
// path never changes; entering the same scope again pushes it again and
// resets its counter, so repeated constructions renumber from 1. That reset
// is intended behavior and is what makes label sequences reproducible across
// runs.
//
// Scopes are not safe for concurrent use.
type Scope struct {
	labeler   *Labeler
	basename  string
	path      []string
	activated bool
}

// NewScope builds an unresolved scope on the default Labeler. The basename
// must be a valid path segment.
func NewScope(basename string) (*Scope, error) {
	return Default().NewScope(basename)
}

// AnonymousScope builds an unresolved scope on the default Labeler whose
// basename will be derived from the parent's counter on Enter.
func AnonymousScope() *Scope {
	return Default().AnonymousScope()
}

// ScopeFromLabel builds a pre-resolved scope on the default Labeler from a
// label's path.
func ScopeFromLabel(l Label) *Scope {
	return Default().ScopeFromLabel(l)
}

// ScopeFromScope copies another scope onto the default Labeler.
func ScopeFromScope(other *Scope) *Scope {
	return Default().ScopeFromScope(other)
}

// GlobalScope returns a fresh pre-resolved scope with path ["global"] on the
// default Labeler.
func GlobalScope() *Scope {
	return Default().GlobalScope()
}

// Current returns the nearest entered scope on the default Labeler, or nil
// when no scope is active.
func Current() *Scope {
	return Default().Current()
}

// NewScope builds an unresolved scope with the given basename. Construction
// validates the basename but touches neither the stack nor the counters.
func (lb *Labeler) NewScope(basename string) (*Scope, error) {
	if err := ValidateName(basename); err != nil {
		return nil, err
	}
	return &Scope{labeler: lb, basename: basename}, nil
}

// AnonymousScope builds an unresolved scope whose basename is derived from
// the parent scope's counter when entered.
func (lb *Labeler) AnonymousScope() *Scope {
	return &Scope{labeler: lb}
}

// ScopeFromLabel builds a pre-resolved scope whose path equals the label's
// parts. A zero label yields an anonymous unresolved scope.
func (lb *Labeler) ScopeFromLabel(l Label) *Scope {
	if l.IsZero() {
		return lb.AnonymousScope()
	}
	return lb.scopeFromPath(l.Parts())
}

// ScopeFromScope copies another scope onto lb, preserving its resolved path
// or pending basename. Entering the copy re-resets the counter at the same
// path, which is how the original scope behaves when re-entered.
func (lb *Labeler) ScopeFromScope(other *Scope) *Scope {
	if other == nil {
		return lb.AnonymousScope()
	}
	if other.path == nil {
		return &Scope{labeler: lb, basename: other.basename}
	}
	return lb.scopeFromPath(other.Path())
}

// GlobalScope returns a fresh pre-resolved scope with path ["global"]. It can
// be entered without ever appearing in nested form and is always available.
func (lb *Labeler) GlobalScope() *Scope {
	return lb.scopeFromPath([]string{GlobalNamespace})
}

// Current returns the nearest entered scope, or nil when no scope is active.
// This is the one place where an empty context is a normal state rather than
// a failure: "no active scope" is valid.
func (lb *Labeler) Current() *Scope {
	top, err := lb.scopes.Peek(labelNamespaceKey)
	if err != nil {
		return nil
	}
	return top
}

func (lb *Labeler) scopeFromPath(path []string) *Scope {
	copied := make([]string, len(path))
	copy(copied, path)
	return &Scope{
		labeler:  lb,
		basename: copied[len(copied)-1],
		path:     copied,
	}
}

// Enter activates the scope: it resolves the path if this is the first entry,
// pushes the scope onto the active stack, and resets the counter for its
// absolute name so numbering inside restarts from 1. It returns the scope so
// the entry and guaranteed exit read as one statement:
//
//	defer scope.Enter().Exit()
//
// Use Do when the exit error matters or the block may panic.
//
// When the scope has neither a basename nor an active parent, it is placed
// under the global namespace and a warning is logged, because global
// numbering is not stable across refactors.
func (s *Scope) Enter() *Scope {
	lb := s.labeler
	if s.path == nil {
		parent := lb.Current()
		if s.basename == "" {
			if parent == nil {
				lb.logger().LogScopeEvent(ScopeLogEvent{
					Message: "name not provided and no label scope is active; falling back to global numbering, which is not reproducible across refactors",
					Warning: true,
				})
				parent = lb.GlobalScope()
			}
			// The parent is always resolved here, so this cannot fail.
			s.basename, _ = parent.NextLabel()
		}
		if parent != nil {
			s.path = append(parent.Path(), s.basename)
		} else {
			s.path = []string{s.basename}
		}
	}

	lb.scopes.Push(labelNamespaceKey, s)
	lb.counters.Reset(strings.Join(s.path, Separator))
	s.activated = true
	lb.notify(journal.VerbScopeEntered, s.Path())
	return s
}

// Exit deactivates the scope, popping it from the active stack. It must run
// on every exit path of the block that entered the scope, including error
// paths, or every later Current lookup is corrupted. Exiting when this scope
// is not on top reports ErrScopeMismatch; exiting with nothing entered
// reports ErrEmptyContext.
func (s *Scope) Exit() error {
	top, err := s.labeler.scopes.Pop(labelNamespaceKey)
	if err != nil {
		return err
	}
	s.activated = false
	if top != s {
		return fmt.Errorf("%w: popped %v", ErrScopeMismatch, top)
	}
	return nil
}

// Do enters the scope, runs fn, and exits on every path out of fn, panics
// included. The exit error is returned when fn itself succeeds.
func (s *Scope) Do(fn func() error) (err error) {
	s.Enter()
	defer func() {
		if exitErr := s.Exit(); err == nil {
			err = exitErr
		}
	}()
	if fn == nil {
		return nil
	}
	return fn()
}

// Name returns the full slash-joined path, e.g. "model/cell/2". It fails
// with ErrScopeNotEntered until the scope has been entered at least once.
func (s *Scope) Name() (string, error) {
	if s.path == nil {
		return "", fmt.Errorf("%w: %q", ErrScopeNotEntered, s.basename)
	}
	return strings.Join(s.path, Separator), nil
}

// AbsoluteScope is an alias of Name.
func (s *Scope) AbsoluteScope() (string, error) {
	return s.Name()
}

// Label returns the scope's resolved path as a Label. Same entry requirement
// as Name.
func (s *Scope) Label() (Label, error) {
	if s.path == nil {
		return Label{}, fmt.Errorf("%w: %q", ErrScopeNotEntered, s.basename)
	}
	return LabelFromParts(s.path), nil
}

// NextLabel generates the "name" part for the next child of this scope by
// advancing its counter.
func (s *Scope) NextLabel() (string, error) {
	name, err := s.Name()
	if err != nil {
		return "", err
	}
	return strconv.Itoa(s.labeler.counters.Next(name)), nil
}

// Path returns a copy of the resolved path segments, or nil before the first
// Enter.
func (s *Scope) Path() []string {
	if s.path == nil {
		return nil
	}
	out := make([]string, len(s.path))
	copy(out, s.path)
	return out
}

// Basename returns the last path segment, which may be empty until resolved.
func (s *Scope) Basename() string {
	return s.basename
}

// Entered reports whether the path has been resolved.
func (s *Scope) Entered() bool {
	return s.path != nil
}

// Activated reports whether the scope is currently on the active stack.
func (s *Scope) Activated() bool {
	return s.activated
}

// Equal reports whether two scopes resolve to the same path, element-wise.
// Two scopes that were never entered compare equal when both paths are still
// unset.
func (s *Scope) Equal(other *Scope) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.path) != len(other.path) {
		return false
	}
	for i := range s.path {
		if s.path[i] != other.path[i] {
			return false
		}
	}
	return true
}

func (s *Scope) String() string {
	if s.path == nil {
		return fmt.Sprintf("Scope(%q, not entered)", s.basename)
	}
	return fmt.Sprintf("Scope(%q)", strings.Join(s.path, Separator))
}
