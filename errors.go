package labels

import "errors"

var (
	// ErrEmptyContext indicates a pop or peek on a context key with nothing
	// pushed under it.
	ErrEmptyContext = errors.New("labels: context is empty")
	// ErrEmptyName indicates an empty path segment was supplied.
	ErrEmptyName = errors.New("labels: name must not be empty")
	// ErrNameSeparator indicates a path segment containing the separator.
	ErrNameSeparator = errors.New("labels: name must not contain a slash")
	// ErrScopeNotEntered indicates a query against a scope whose path has
	// never been resolved.
	ErrScopeNotEntered = errors.New("labels: scope has not been entered")
	// ErrNilScope indicates a nil scope was supplied where one is required.
	ErrNilScope = errors.New("labels: scope must not be nil")
	// ErrScopeMismatch indicates Exit popped a different scope than the one
	// it was called on. Push and pop must pair up on every exit path.
	ErrScopeMismatch = errors.New("labels: exited scope does not match the entered scope")
)
