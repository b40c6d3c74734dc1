package labels

import (
	"strings"
	"testing"
)

func TestNewLabelSingleSegment(t *testing.T) {
	l := NewLabel("bar")
	if l.String() != "bar" {
		t.Fatalf("String = %q, want %q", l.String(), "bar")
	}
	parts := l.Parts()
	if len(parts) != 1 || parts[0] != "bar" {
		t.Fatalf("Parts = %v, want [bar]", parts)
	}
}

func TestNewLabelVerbatim(t *testing.T) {
	// NewLabel applies no validation; the printable value is the input as is.
	l := NewLabel("a/b")
	if l.String() != "a/b" {
		t.Fatalf("String = %q, want %q", l.String(), "a/b")
	}
	if l.Depth() != 1 {
		t.Fatalf("single-string labels keep one part, Depth = %d", l.Depth())
	}
}

func TestLabelFromParts(t *testing.T) {
	parts := []string{"model", "cell", "2"}
	l := LabelFromParts(parts)
	if l.String() != "model/cell/2" {
		t.Fatalf("String = %q", l.String())
	}
	if l.String() != strings.Join(l.Parts(), Separator) {
		t.Fatalf("canonical value must equal the joined parts")
	}
	if l.Name() != "2" {
		t.Fatalf("Name = %q, want %q", l.Name(), "2")
	}
	if l.Scope() != "model/cell" {
		t.Fatalf("Scope = %q, want %q", l.Scope(), "model/cell")
	}
	if l.Depth() != 3 {
		t.Fatalf("Depth = %d, want 3", l.Depth())
	}

	parts[0] = "mutated"
	if l.Parts()[0] != "model" {
		t.Fatalf("label must copy its input segments")
	}
}

func TestLabelEqual(t *testing.T) {
	a := LabelFromParts([]string{"model", "1"})
	b := NewLabel("model/1")
	if !a.Equal(b) {
		t.Fatalf("labels with the same canonical value must compare equal")
	}
	if a.Equal(NewLabel("model/2")) {
		t.Fatalf("different values must not compare equal")
	}
}

func TestLabelIsZero(t *testing.T) {
	var zero Label
	if !zero.IsZero() {
		t.Fatalf("zero label should report IsZero")
	}
	if NewLabel("x").IsZero() {
		t.Fatalf("non-empty label should not report IsZero")
	}
}

func TestLabelAsScope(t *testing.T) {
	lb := New()
	scope := LabelFromParts([]string{"model", "cell"}).AsScopeIn(lb)
	if !scope.Entered() {
		t.Fatalf("scope from label must be pre-resolved")
	}
	name, err := scope.Name()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "model/cell" {
		t.Fatalf("Name = %q", name)
	}
	if scope.Basename() != "cell" {
		t.Fatalf("Basename = %q", scope.Basename())
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("cell"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateName("my_cell"); err != nil {
		t.Fatalf("underscores are allowed, got %v", err)
	}
	if err := ValidateName(""); err == nil {
		t.Fatalf("empty name must fail")
	}
	if err := ValidateName("a/b"); err == nil {
		t.Fatalf("separator in name must fail")
	}
}
