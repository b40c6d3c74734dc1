package labels

import (
	"testing"

	"pgregory.net/rapid"
)

// labelingOp is one step of a randomly generated labeling session.
type labelingOp struct {
	kind string // "enter", "exit", "auto", "autoNamed"
	name string
}

func opGenerator() *rapid.Generator[labelingOp] {
	segment := rapid.StringMatching(`[a-z]{1,6}`)
	return rapid.Custom(func(t *rapid.T) labelingOp {
		op := labelingOp{kind: rapid.SampledFrom([]string{"enter", "enterAnon", "exit", "auto", "autoNamed"}).Draw(t, "kind")}
		switch op.kind {
		case "enter", "autoNamed":
			op.name = segment.Draw(t, "name")
		}
		return op
	})
}

// replay runs ops against a fresh labeler and returns every generated label.
func replay(ops []labelingOp) []string {
	lb := New(WithLogger(nil))
	var entered []*Scope
	var generated []string

	for _, op := range ops {
		switch op.kind {
		case "enter":
			scope, err := lb.NewScope(op.name)
			if err != nil {
				continue
			}
			entered = append(entered, scope.Enter())
		case "enterAnon":
			entered = append(entered, lb.AnonymousScope().Enter())
		case "exit":
			if len(entered) == 0 {
				continue
			}
			last := entered[len(entered)-1]
			entered = entered[:len(entered)-1]
			_ = last.Exit()
		case "auto":
			if l, err := lb.Auto(); err == nil {
				generated = append(generated, l.String())
			}
		case "autoNamed":
			if l, err := lb.Auto(WithName(op.name)); err == nil {
				generated = append(generated, l.String())
			}
		}
	}
	for i := len(entered) - 1; i >= 0; i-- {
		_ = entered[i].Exit()
	}
	return generated
}

// TestPropertyLabelsAreReproducible checks the core guarantee: an identical
// sequence of scope and Auto calls yields an identical sequence of labels on
// every run.
func TestPropertyLabelsAreReproducible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(opGenerator(), 0, 40).Draw(t, "ops")

		first := replay(ops)
		second := replay(ops)

		if len(first) != len(second) {
			t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("label %d differs: %q vs %q", i, first[i], second[i])
			}
		}
	})
}

// TestPropertyAutoIdempotent checks Auto(Auto(x)) == Auto(x) for arbitrary
// valid names in arbitrary scopes.
func TestPropertyAutoIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lb := New(WithLogger(nil))
		name := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "name")
		scopeName := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "scope")

		scope, err := lb.NewScope(scopeName)
		if err != nil {
			t.Fatalf("NewScope: %v", err)
		}
		err = scope.Do(func() error {
			once, err := lb.Auto(WithName(name))
			if err != nil {
				return err
			}
			twice, err := lb.Auto(FromLabel(once))
			if err != nil {
				return err
			}
			if !once.Equal(twice) {
				t.Fatalf("Auto not idempotent: %q vs %q", once, twice)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

// TestPropertyCounterSequence checks that k calls to Next yield exactly 1..k
// for any namespace.
func TestPropertyCounterSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		counters := NewCounters()
		namespace := rapid.StringN(1, 32, -1).Draw(t, "namespace")
		k := rapid.IntRange(1, 100).Draw(t, "k")

		for want := 1; want <= k; want++ {
			if got := counters.Next(namespace); got != want {
				t.Fatalf("Next = %d, want %d", got, want)
			}
		}
		counters.Reset(namespace)
		if got := counters.Next(namespace); got != 1 {
			t.Fatalf("Next after Reset = %d, want 1", got)
		}
	})
}
