package schedule

import "fmt"

// ValidationError signals malformed caller input or an unsatisfiable
// precondition (no enabled rules, bad timestamps). It always aborts the
// whole call before any partial application.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError signals an unknown account or season. Like ValidationError
// it aborts before any side effects.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
