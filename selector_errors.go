package labels

import (
	"errors"
	"fmt"
	"strings"
)

// MatchError captures selector metadata alongside the originating error.
type MatchError struct {
	Engine string
	Expr   string
	Label  string
	Err    error
}

func (e *MatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("labels: %s selector %s label=%s: %v", e.Engine, describeExpression(e.Expr), e.Label, e.Err)
}

func (e *MatchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapSelectorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var matchErr *MatchError
	if errors.As(err, &matchErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "labels:") {
		return err
	}
	return fmt.Errorf("labels: %s selector: %w", engine, err)
}

func wrapMatchError(engine, expr, label string, err error) error {
	if err == nil {
		return nil
	}

	var matchErr *MatchError
	if errors.As(err, &matchErr) {
		if matchErr.Engine == "" {
			matchErr.Engine = engine
		}
		if matchErr.Expr == "" {
			matchErr.Expr = expr
		}
		if matchErr.Label == "" {
			matchErr.Label = label
		}
		return matchErr
	}

	return &MatchError{
		Engine: engine,
		Expr:   expr,
		Label:  label,
		Err:    err,
	}
}
