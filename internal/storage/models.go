/*
Package storage persists the action log: the audit trail of review and
promotion actions taken through the dashboard and CLI.

Records go into a local SQLite database (modernc.org/sqlite, pure Go)
under the learning directory. The table is insert-only; records are never
updated or deleted, and nothing in the lifecycle logic reads them back.
The log is purely observational, so storage failures degrade gracefully
instead of failing the action that triggered them.
*/
package storage

import "time"

// Action types.
const (
	ActionReview  = "review"
	ActionPromote = "promote"
)

// ActionRecord is one audit-trail entry.
type ActionRecord struct {
	// ID is a UUID assigned at append time.
	ID string `json:"id"`

	// Type is "review" or "promote" (free-form for /api/log callers).
	Type string `json:"type"`

	// Title of the learning entry the action touched.
	Title string `json:"title"`

	// Source log of the entry.
	Source string `json:"source"`

	// Status the action moved the entry to.
	Status string `json:"status"`

	// Reason supplied with the action, if any.
	Reason string `json:"reason"`

	// SkillPath of the created descriptor, for promote actions.
	SkillPath string `json:"skillPath,omitempty"`

	// Timestamp is when the action was recorded, UTC.
	Timestamp time.Time `json:"timestamp"`
}
