package model

import "fmt"

// ConflictError is returned when a start is attempted while another entry is
// already running. The running entry is left untouched.
type ConflictError struct {
	ActiveID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a time entry is already running (id %s); stop it before starting a new one", e.ActiveID)
}

// InvalidStateError is returned when an operation is attempted from a state
// that does not permit it, e.g. stopping an entry that is not the active one.
type InvalidStateError struct {
	Op      string
	EntryID string
	Reason  string
}

func (e *InvalidStateError) Error() string {
	if e.EntryID != "" {
		return fmt.Sprintf("invalid state for %s [%s]: %s", e.Op, e.EntryID, e.Reason)
	}
	return fmt.Sprintf("invalid state for %s: %s", e.Op, e.Reason)
}

// NotFoundError is returned when an entry id is unknown to the store or the
// remote service.
type NotFoundError struct {
	EntryID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("time entry not found: %s", e.EntryID)
}

// RemoteError wraps a failure of the persistence service with enough context
// for the caller to decide whether a retry is safe.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s failed: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
