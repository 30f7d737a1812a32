package learning

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Render converts a log back into its on-disk text form. Known fields are
// emitted in canonical order, then unrecognized key/value lines in their
// original relative order, then any verbatim trailing content.
func Render(log *Log) string {
	var b strings.Builder

	for _, line := range log.Preamble {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for _, e := range log.Entries {
		fmt.Fprintf(&b, "- [%s] %s\n", e.Timestamp, e.Title)
		for _, kv := range renderFields(e) {
			fmt.Fprintf(&b, "  - %s: %s\n", kv.Key, kv.Value)
		}
		for _, line := range e.Trailing {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// renderFields selects which known key/value lines an entry emits. Legacy
// entries only get back the keys they already had; lifecycle-tracked
// entries always carry fingerprint, source, status and details.
func renderFields(e *Entry) []KV {
	var out []KV
	emit := func(key, value string) {
		out = append(out, KV{Key: key, Value: value})
	}

	if e.Legacy {
		if e.seen["fingerprint"] {
			emit("fingerprint", e.Fingerprint)
		}
		if e.seen["source"] {
			emit("source", string(e.Source))
		}
		if e.seen["details"] {
			emit("details", e.Details)
		}
	} else {
		if e.Fingerprint != "" {
			emit("fingerprint", e.Fingerprint)
		}
		if e.Source != "" {
			emit("source", string(e.Source))
		}
		emit("status", string(e.DisplayStatus()))
		if e.Details != "" || e.seen["details"] {
			emit("details", e.Details)
		}
	}

	if e.ReviewNote != "" {
		emit("reason", e.ReviewNote)
	}
	if e.SkillPath != "" {
		emit("skillPath", e.SkillPath)
	}

	out = append(out, e.Unknown...)
	return out
}

// Save rewrites the log file in one atomic operation: the rendered content
// goes to a temp file in the same directory, is synced, and then renamed
// over the target so a crash never truncates the log.
func Save(path string, log *Log) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".entries-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(Render(log)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
