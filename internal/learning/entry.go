/*
Package learning implements the learning-entry lifecycle: parsing the
append-only entry logs, fingerprint-based deduplication, the review state
machine, and promotion of reviewed entries into skill descriptors.

Entries live in two flat text logs (manual and generated), one entry per
block:

	- [2025-01-02 15:04:05 UTC] Use retry with backoff
	  - fingerprint: 3f2a...
	  - source: generated
	  - status: pending
	  - details: reduces flaky network failures

The logs are hand-editable; the parser is tolerant and the serializer
preserves content it does not understand.
*/
package learning

import (
	"fmt"
	"time"
)

// TimestampFormat is the display format used in entry headers.
const TimestampFormat = "2006-01-02 15:04:05 UTC"

// Source identifies which entry log an entry belongs to.
type Source string

const (
	SourceManual    Source = "manual"
	SourceGenerated Source = "generated"
)

// Sources lists the recognized sources in log order.
var Sources = []Source{SourceManual, SourceGenerated}

// ParseSource validates a source value.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceManual, SourceGenerated:
		return Source(s), nil
	}
	return "", &ValidationError{Message: fmt.Sprintf("unsupported source: %q (expected manual or generated)", s)}
}

// Status is the review state of an entry.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPromoted Status = "promoted"
)

// ParseStatus validates a status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusPromoted:
		return Status(s), nil
	}
	return "", &ValidationError{Message: fmt.Sprintf("unsupported status: %q", s)}
}

// Entry is one record in an entry log.
type Entry struct {
	// Timestamp is the header timestamp exactly as written in the log.
	Timestamp string `json:"timestamp"`

	// Title is the free-text label from the entry header.
	Title string `json:"title"`

	// Fingerprint is the SHA-256 content hash used for dedup and addressing.
	// Empty for legacy entries written before fingerprint tracking.
	Fingerprint string `json:"fingerprint"`

	// Source is the log the entry belongs to.
	Source Source `json:"source"`

	// Status is the review state. Legacy entries have no recorded status;
	// see DisplayStatus.
	Status Status `json:"status"`

	// Details is the free-text description.
	Details string `json:"details"`

	// ReviewNote is the reason attached during the last review transition.
	ReviewNote string `json:"reviewNote"`

	// SkillPath is the repo-relative descriptor path, set on promotion.
	SkillPath string `json:"skillPath,omitempty"`

	// Legacy marks entries that predate fingerprint/status tracking.
	// They display as approved and are never normalized on save.
	Legacy bool `json:"legacy,omitempty"`

	// Unknown holds key/value body lines the parser does not recognize.
	// They are re-emitted on save so hand-written annotations survive a
	// rewrite cycle.
	Unknown []KV `json:"-"`

	// Trailing holds body lines that match neither the header nor the
	// key/value pattern, re-emitted verbatim.
	Trailing []string `json:"-"`

	// seen tracks which known keys were present in the parsed block, so
	// the serializer does not invent lines for legacy entries.
	seen map[string]bool
}

// KV is an unrecognized "- key: value" body line.
type KV struct {
	Key   string
	Value string
}

// DisplayStatus returns the status used for counting and display. Legacy
// entries predate status tracking and were live skills historically, so
// they report as approved.
func (e *Entry) DisplayStatus() Status {
	if e.Legacy && e.Status == "" {
		return StatusApproved
	}
	if e.Status == "" {
		return StatusPending
	}
	return e.Status
}

// Time parses the header timestamp. ok is false when the timestamp does not
// match the canonical format.
func (e *Entry) Time() (time.Time, bool) {
	t, err := time.Parse(TimestampFormat, e.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NewEntry creates a pending entry stamped with the current UTC time.
func NewEntry(source Source, title, details string) *Entry {
	return &Entry{
		Timestamp:   time.Now().UTC().Format(TimestampFormat),
		Title:       title,
		Fingerprint: Fingerprint(source, title, details),
		Source:      source,
		Status:      StatusPending,
		Details:     details,
	}
}
