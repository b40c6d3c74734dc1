package labels

// DefaultNamespace is the namespace used when callers do not supply one.
const DefaultNamespace = "default"

// Counters keeps one monotonically increasing counter per namespace. Counters
// are process-wide state when reached through the default Labeler; tests that
// need isolation should construct their own instance or call ResetDefault.
// Not safe for concurrent callers sharing a namespace; serialize externally
// when adapting to a concurrent environment.
type Counters struct {
	last map[string]int
}

// NewCounters constructs an empty counter registry.
func NewCounters() *Counters {
	return &Counters{last: make(map[string]int)}
}

// Next increments and returns the counter for namespace. The first call for a
// namespace returns 1.
func (c *Counters) Next(namespace string) int {
	if c.last == nil {
		c.last = make(map[string]int)
	}
	c.last[namespace]++
	return c.last[namespace]
}

// Reset sets the counter for namespace back to 0 so the next call to Next
// returns 1 again. Resetting a namespace that was never used is a no-op.
func (c *Counters) Reset(namespace string) {
	if c.last == nil {
		return
	}
	c.last[namespace] = 0
}

// ResetAll clears every namespace. Intended for test teardown.
func (c *Counters) ResetAll() {
	c.last = make(map[string]int)
}

// UID returns the next unique id for namespace from the default Labeler. An
// empty namespace means DefaultNamespace. Not thread-safe.
func UID(namespace string) int {
	return Default().UID(namespace)
}

// ResetUID resets the counter for namespace on the default Labeler. An empty
// namespace means DefaultNamespace.
func ResetUID(namespace string) {
	Default().ResetUID(namespace)
}
