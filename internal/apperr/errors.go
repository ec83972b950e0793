// Package apperr defines the failure kinds the placement engine
// surfaces to callers. Every domain failure is one of two kinds:
// a missing entity or an operation the current state/actor does not
// permit. Both are synchronous and non-retryable; the message is the
// human-readable reason shown verbatim to the caller.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError means a referenced internship, application, withdrawal
// request or user id does not exist.
type NotFoundError struct {
	msg string
}

func NotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string { return e.msg }

// InvalidOperationError covers authorization failures, state-machine
// violations, quota/slot/date-range violations and eligibility
// failures.
type InvalidOperationError struct {
	msg string
}

func Invalid(format string, args ...any) *InvalidOperationError {
	return &InvalidOperationError{msg: fmt.Sprintf(format, args...)}
}

func (e *InvalidOperationError) Error() string { return e.msg }

// SaveError reports a persistence failure after an in-memory mutation
// already succeeded. The mutation is NOT rolled back; callers must
// treat it as "applied, durability uncertain".
type SaveError struct {
	cause error
}

func SaveFailed(cause error) *SaveError {
	return &SaveError{cause: cause}
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("mutation applied but not persisted: %v", e.cause)
}

func (e *SaveError) Unwrap() error { return e.cause }

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsInvalidOperation(err error) bool {
	var target *InvalidOperationError
	return errors.As(err, &target)
}

func IsSaveFailure(err error) bool {
	var target *SaveError
	return errors.As(err, &target)
}
