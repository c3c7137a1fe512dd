package services

import "fmt"

// ConfigurationError reports malformed or missing registration fields,
// or a date that does not parse. It aborts only the operation that
// triggered it.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// SourceAccessError wraps a failure to open or read one source's sheet.
// It is recovered at the per-source boundary: the run continues with the
// remaining sources.
type SourceAccessError struct {
	URL string
	Err error
}

func (e *SourceAccessError) Error() string {
	return fmt.Sprintf("cannot access sheet %s: %v", e.URL, e.Err)
}

func (e *SourceAccessError) Unwrap() error { return e.Err }

// StorageError wraps a row transaction that failed to commit. The row is
// rolled back and left unmarked so the next run retries it.
type StorageError struct {
	RespondentID string
	Err          error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("row %s not stored: %v", e.RespondentID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RunPreconditionError means the sync run could not start at all, for
// example because the Google credentials are unavailable. No per-source
// results are produced.
type RunPreconditionError struct {
	Err error
}

func (e *RunPreconditionError) Error() string {
	return fmt.Sprintf("sync cannot start: %v", e.Err)
}

func (e *RunPreconditionError) Unwrap() error { return e.Err }
