package learning

import (
	"fmt"
	"path/filepath"
)

// EntriesFileName is the log file name inside each source directory.
const EntriesFileName = "entries.md"

// Store owns the on-disk entry logs. All mutations go through a full
// load / mutate / atomic-save cycle; nothing edits the files in place.
type Store struct {
	// learningDir contains one subdirectory per source, each holding an
	// entries.md log.
	learningDir string

	// repoRoot anchors the repo-relative paths recorded in skillPath.
	repoRoot string

	// collections maps a promotion target name to its skill directory.
	collections map[string]string
}

// NewStore creates a store rooted at repoRoot. collections maps target
// names (e.g. "skills") to absolute skill-collection directories.
func NewStore(repoRoot, learningDir string, collections map[string]string) *Store {
	return &Store{
		learningDir: learningDir,
		repoRoot:    repoRoot,
		collections: collections,
	}
}

// Path returns the log file path for a source.
func (s *Store) Path(source Source) string {
	return filepath.Join(s.learningDir, string(source), EntriesFileName)
}

// Load reads one source's log.
func (s *Store) Load(source Source) (*Log, error) {
	return Load(s.Path(source), source)
}

// Union loads both logs and returns their entries, manual first, each log
// in file order.
func (s *Store) Union() ([]*Entry, error) {
	var all []*Entry
	for _, src := range Sources {
		log, err := s.Load(src)
		if err != nil {
			return nil, err
		}
		all = append(all, log.Entries...)
	}
	return all, nil
}

// RecordResult reports the outcome of a Record call.
type RecordResult struct {
	// Entry is the stored entry: the new one, or the existing entry the
	// insert collided with.
	Entry *Entry

	// Duplicate is true when an entry with the same fingerprint already
	// existed. Duplicates are a successful no-op, not an error.
	Duplicate bool
}

// Record inserts a new pending entry into the source's log, deduplicating
// by fingerprint. Re-recording the same (source, title, details) is
// expected operator behavior and silently reports the existing entry.
func (s *Store) Record(source Source, title, details string) (*RecordResult, error) {
	if title == "" {
		return nil, &ValidationError{Message: "title must not be empty"}
	}
	if details == "" {
		return nil, &ValidationError{Message: "details must not be empty"}
	}

	log, err := s.Load(source)
	if err != nil {
		return nil, err
	}

	fp := Fingerprint(source, title, details)
	if existing := log.FindByFingerprint(fp); existing != nil {
		return &RecordResult{Entry: existing, Duplicate: true}, nil
	}

	entry := NewEntry(source, title, details)
	log.Entries = append(log.Entries, entry)
	if err := Save(s.Path(source), log); err != nil {
		return nil, err
	}
	return &RecordResult{Entry: entry}, nil
}

// PendingCount returns the number of pending entries across both logs,
// used by the review-reminder threshold.
func (s *Store) PendingCount() (int, error) {
	all, err := s.Union()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range all {
		if e.DisplayStatus() == StatusPending {
			n++
		}
	}
	return n, nil
}

// findForUpdate loads a log and locates the addressed entry.
func (s *Store) findForUpdate(source Source, fingerprint string) (*Log, *Entry, error) {
	if fingerprint == "" {
		return nil, nil, &ValidationError{Message: "fingerprint must not be empty"}
	}
	log, err := s.Load(source)
	if err != nil {
		return nil, nil, err
	}
	entry := log.FindByFingerprint(fingerprint)
	if entry == nil {
		return nil, nil, &NotFoundError{Source: source, Fingerprint: fingerprint}
	}
	return log, entry, nil
}

// collectionDir resolves a promotion target name.
func (s *Store) collectionDir(target string) (string, error) {
	dir, ok := s.collections[target]
	if !ok {
		return "", &ValidationError{Message: fmt.Sprintf("unsupported target: %q", target)}
	}
	return dir, nil
}
