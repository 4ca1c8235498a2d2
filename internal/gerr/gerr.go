// Package gerr defines the typed error taxonomy used across gotag.
//
// Each exported type corresponds to one failure category a caller might
// need to branch on (bad input shape, a spec that doesn't parse, a
// required config value left unset, and so on). The types that carry an
// underlying cause (InvalidInputError, InvalidSpecError, MisconfiguredError)
// implement Unwrap so callers can still use errors.Is/As against it.
package gerr

import "fmt"

// InvalidInputError reports a case or argument that is structurally wrong
// (bad UUID, missing field, wrong type) before any processing starts.
type InvalidInputError struct {
	Subject string
	Message string
	Err     error
}

func NewInvalidInput(subject, message string, err error) error {
	return &InvalidInputError{Subject: subject, Message: message, Err: err}
}

func (e *InvalidInputError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("invalid input: %s", e.Message)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Subject, e.Message)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// InvalidSpecError reports a pipeline or DAG specification that fails
// build-time validation (duplicate names, cycles, unknown inputs, ...).
type InvalidSpecError struct {
	Subject string
	Message string
	Err     error
}

func NewInvalidSpec(subject, message string, err error) error {
	return &InvalidSpecError{Subject: subject, Message: message, Err: err}
}

func (e *InvalidSpecError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("invalid spec: %s", e.Message)
	}
	return fmt.Sprintf("invalid spec: %s: %s", e.Subject, e.Message)
}

func (e *InvalidSpecError) Unwrap() error { return e.Err }

// MissingRequiredError reports one or more config leaves that are still
// sentinel "required" values after merge and patch application.
type MissingRequiredError struct {
	Paths []string
}

func NewMissingRequired(paths []string) error {
	return &MissingRequiredError{Paths: paths}
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("missing required configuration values: %v", e.Paths)
}

// MisconfiguredError reports a config value that resolved but is
// semantically wrong (bad type, out of range, unknown key).
type MisconfiguredError struct {
	Path    string
	Message string
	Err     error
}

func NewMisconfigured(path, message string, err error) error {
	return &MisconfiguredError{Path: path, Message: message, Err: err}
}

func (e *MisconfiguredError) Error() string {
	return fmt.Sprintf("misconfigured %q: %s", e.Path, e.Message)
}

func (e *MisconfiguredError) Unwrap() error { return e.Err }

// InvalidSessionError reports a realtime adapter session configuration
// (voice, modalities, turn_detection) that fails validation before any
// connection is opened.
type InvalidSessionError struct {
	Field   string
	Message string
}

func NewInvalidSession(field, message string) error {
	return &InvalidSessionError{Field: field, Message: message}
}

func (e *InvalidSessionError) Error() string {
	return fmt.Sprintf("invalid session config %q: %s", e.Field, e.Message)
}

// NotFoundError reports a lookup (model name, run-log id, pipeline name)
// that found nothing.
type NotFoundError struct {
	Kind string
	Key  string
}

func NewNotFound(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Key)
}

// DuplicateError reports a second registration under a name already taken.
type DuplicateError struct {
	Kind string
	Key  string
}

func NewDuplicate(kind, key string) error {
	return &DuplicateError{Kind: kind, Key: key}
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already registered: %q", e.Kind, e.Key)
}

// DeadlockError indicates an unreachable internal state: the DAG executor
// still has unresolved nodes but nothing is runnable and nothing is in
// flight. A correctly built DAG should never reach this; its presence
// means build-time validation missed something.
type DeadlockError struct {
	Pending []string
}

func NewDeadlock(pending []string) error {
	return &DeadlockError{Pending: pending}
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("internal error: deadlock with pending stages %v", e.Pending)
}

// CancelledBatchError reports that a batch run was cancelled before every
// case finished. Cases already in flight are allowed to complete their
// current stage; queued cases are abandoned.
type CancelledBatchError struct {
	Completed int
	Total     int
}

func NewCancelledBatch(completed, total int) error {
	return &CancelledBatchError{Completed: completed, Total: total}
}

func (e *CancelledBatchError) Error() string {
	return fmt.Sprintf("batch cancelled after %d/%d cases", e.Completed, e.Total)
}
