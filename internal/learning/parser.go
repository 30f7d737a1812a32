package learning

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	headerRe = regexp.MustCompile(`^- \[([^\]]+)\] (.+)$`)
	kvRe     = regexp.MustCompile(`^  - ([A-Za-z0-9_]+): (.*)$`)
)

// Log is the parsed form of one entry log file.
type Log struct {
	// Preamble holds the lines before the first entry header (typically a
	// Markdown heading), re-emitted verbatim on save.
	Preamble []string

	// Entries in file order, oldest first.
	Entries []*Entry
}

// FindByFingerprint returns the entry with the given fingerprint, or nil.
func (l *Log) FindByFingerprint(fp string) *Entry {
	if fp == "" {
		return nil
	}
	for _, e := range l.Entries {
		if e.Fingerprint == fp {
			return e
		}
	}
	return nil
}

// Load reads and parses the log at path. A missing file yields an empty
// log; only a real I/O failure is an error. Entries with no source line
// are assigned source, since the file itself is the partition.
func Load(path string, source Source) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Log{}, nil
		}
		return nil, fmt.Errorf("failed to read entry log: %w", err)
	}

	log := Parse(splitLines(string(data)))
	for _, e := range log.Entries {
		if e.Source == "" {
			e.Source = source
		}
	}
	return log, nil
}

// Parse converts raw log lines into entries. It never fails: an entry
// begins at each "- [timestamp] title" line, indented "- key: value" lines
// attach to it, and anything else is preserved verbatim so a hand-edited
// log survives a parse/rewrite cycle untouched.
func Parse(lines []string) *Log {
	log := &Log{}
	var cur *Entry

	for _, line := range lines {
		if m := headerRe.FindStringSubmatch(line); m != nil {
			cur = &Entry{
				Timestamp: m[1],
				Title:     m[2],
				seen:      map[string]bool{},
			}
			log.Entries = append(log.Entries, cur)
			continue
		}

		if cur == nil {
			log.Preamble = append(log.Preamble, line)
			continue
		}

		if m := kvRe.FindStringSubmatch(line); m != nil {
			applyKV(cur, m[1], m[2])
			continue
		}

		cur.Trailing = append(cur.Trailing, line)
	}

	for _, e := range log.Entries {
		finishEntry(e)
	}
	return log
}

// applyKV routes a body line into the entry. Unrecognized keys are kept
// so they can be re-emitted.
func applyKV(e *Entry, key, value string) {
	switch key {
	case "fingerprint":
		e.Fingerprint = value
		e.seen[key] = true
	case "source":
		if src, err := ParseSource(value); err == nil {
			e.Source = src
		} else {
			// Unparseable source values are passed through untouched.
			e.Unknown = append(e.Unknown, KV{Key: key, Value: value})
			return
		}
		e.seen[key] = true
	case "status":
		if st, err := ParseStatus(value); err == nil {
			e.Status = st
		} else {
			e.Unknown = append(e.Unknown, KV{Key: key, Value: value})
			return
		}
		e.seen[key] = true
	case "details":
		e.Details = value
		e.seen[key] = true
	case "reason", "reviewNote": // reviewNote is the pre-rename key
		e.ReviewNote = value
		e.seen["reason"] = true
	case "skillPath":
		e.SkillPath = value
		e.seen[key] = true
	default:
		e.Unknown = append(e.Unknown, KV{Key: key, Value: value})
	}
}

// finishEntry applies field defaults after a whole entry block is read.
// Entries with neither fingerprint nor status predate lifecycle tracking
// and are flagged legacy; anything newer defaults to pending.
func finishEntry(e *Entry) {
	if !e.seen["fingerprint"] && !e.seen["status"] {
		e.Legacy = true
		return
	}
	if e.Status == "" {
		e.Status = StatusPending
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
