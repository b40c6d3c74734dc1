package labels

import (
	"fmt"
	"strings"
)

// Separator joins label path segments.
const Separator = "/"

// Label is a generated hierarchical identifier, analogous to a file path: an
// immutable canonical string plus the ordered segments that produced it.
// Carrying the segments lets Auto recognise inputs that are already labels
// and lets a label convert back into the scope that would regenerate it.
//
// The invariant String() == strings.Join(Parts(), Separator) always holds.
type Label struct {
	value string
	parts []string
}

// NewLabel builds a single-segment label whose printable value is name,
// verbatim. No validation is applied; validation happens where segments enter
// the system (scope construction and Auto).
func NewLabel(name string) Label {
	return Label{value: name, parts: []string{name}}
}

// LabelFromParts builds a label from ordered path segments joined by
// Separator. The segments are copied.
func LabelFromParts(parts []string) Label {
	copied := make([]string, len(parts))
	copy(copied, parts)
	return Label{value: strings.Join(copied, Separator), parts: copied}
}

// String returns the canonical slash-joined value.
func (l Label) String() string {
	return l.value
}

// Parts returns a copy of the ordered path segments, root first.
func (l Label) Parts() []string {
	if len(l.parts) == 0 {
		return nil
	}
	out := make([]string, len(l.parts))
	copy(out, l.parts)
	return out
}

// Name returns the last path segment, the "file name" part of the label.
func (l Label) Name() string {
	if len(l.parts) == 0 {
		return ""
	}
	return l.parts[len(l.parts)-1]
}

// Scope returns the slash-joined path up to but excluding the last segment,
// the "directory" part of the label. Empty for single-segment labels.
func (l Label) Scope() string {
	if len(l.parts) < 2 {
		return ""
	}
	return strings.Join(l.parts[:len(l.parts)-1], Separator)
}

// Depth returns the number of path segments.
func (l Label) Depth() int {
	return len(l.parts)
}

// IsZero reports whether the label carries no segments.
func (l Label) IsZero() bool {
	return len(l.parts) == 0
}

// Equal compares two labels by canonical value, matching plain string
// semantics.
func (l Label) Equal(other Label) bool {
	return l.value == other.value
}

// AsScope converts the label into a pre-resolved scope on the default
// Labeler.
func (l Label) AsScope() *Scope {
	return l.AsScopeIn(Default())
}

// AsScopeIn converts the label into a pre-resolved scope on lb.
func (l Label) AsScopeIn(lb *Labeler) *Scope {
	return lb.ScopeFromLabel(l)
}

// ValidateName checks a single path segment supplied by calling code: it must
// be non-empty and must not contain Separator. The original scope-naming
// docs also discourage underscores, but only the separator restriction is
// enforced.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%w: %q", ErrNameSeparator, name)
	}
	return nil
}
