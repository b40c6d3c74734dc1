package labels

import "fmt"

// ContextStack maintains last-in-first-out sequences of values keyed by an
// arbitrary string, so collaborators can track "what is currently active" for
// any scoped concern. Values pushed under a key are visible until popped;
// every push must pair with exactly one pop on every exit path of the block
// that pushed it, or later peeks will observe a stale entry.
//
// ContextStack is not safe for concurrent use and its contents do not survive
// the process.
type ContextStack[T any] struct {
	stacks map[string][]T
}

// NewContextStack constructs an empty stack registry.
func NewContextStack[T any]() *ContextStack[T] {
	return &ContextStack[T]{stacks: make(map[string][]T)}
}

// Push appends value to the sequence stored under key.
func (c *ContextStack[T]) Push(key string, value T) {
	if c.stacks == nil {
		c.stacks = make(map[string][]T)
	}
	c.stacks[key] = append(c.stacks[key], value)
}

// Pop removes and returns the most recently pushed value under key. Popping a
// key with nothing pushed fails with ErrEmptyContext.
func (c *ContextStack[T]) Pop(key string) (T, error) {
	var zero T
	entries := c.stacks[key]
	if len(entries) == 0 {
		return zero, fmt.Errorf("%w: key %q", ErrEmptyContext, key)
	}
	top := entries[len(entries)-1]
	c.stacks[key] = entries[:len(entries)-1]
	return top, nil
}

// Peek returns the most recently pushed value under key without removing it.
// Same failure mode as Pop on an empty key.
func (c *ContextStack[T]) Peek(key string) (T, error) {
	var zero T
	entries := c.stacks[key]
	if len(entries) == 0 {
		return zero, fmt.Errorf("%w: key %q", ErrEmptyContext, key)
	}
	return entries[len(entries)-1], nil
}

// Snapshot returns a copy of the sequence under key, bottom to top. Intended
// for introspection and tests, never for control flow.
func (c *ContextStack[T]) Snapshot(key string) []T {
	entries := c.stacks[key]
	if len(entries) == 0 {
		return nil
	}
	out := make([]T, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of values currently pushed under key.
func (c *ContextStack[T]) Len(key string) int {
	return len(c.stacks[key])
}

// Reset discards every key and sequence. Intended for test teardown.
func (c *ContextStack[T]) Reset() {
	c.stacks = make(map[string][]T)
}
