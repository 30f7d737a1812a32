package learning

import "fmt"

// ValidationError reports malformed or missing input: a bad enum value, an
// empty rejection reason, an unsafe slug, or a write to a terminal entry.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a fingerprint absent from the addressed log.
type NotFoundError struct {
	Source      Source
	Fingerprint string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s entry with fingerprint %s", e.Source, e.Fingerprint)
}

// ConflictError reports a promotion target that already exists.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("skill already exists at %s", e.Path)
}
