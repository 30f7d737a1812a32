package learning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteCreatesDescriptorAndMarksEntry(t *testing.T) {
	s, root := newTestStore(t)
	res, err := s.Record(SourceGenerated, "Use retry with backoff", "reduces flaky network failures")
	require.NoError(t, err)

	skillPath, err := s.Promote(SourceGenerated, res.Entry.Fingerprint,
		"retry-backoff", "Retry transient failures with exponential backoff", "skills")
	require.NoError(t, err)
	assert.Equal(t, "cursor/skills/retry-backoff/SKILL.md", skillPath)

	content, err := os.ReadFile(filepath.Join(root, "cursor", "skills", "retry-backoff", "SKILL.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "name: retry-backoff")
	assert.Contains(t, string(content), "description: Retry transient failures with exponential backoff")
	assert.Contains(t, string(content), "# Use retry with backoff")
	assert.Contains(t, string(content), res.Entry.Fingerprint)

	log, err := s.Load(SourceGenerated)
	require.NoError(t, err)
	entry := log.Entries[0]
	assert.Equal(t, StatusPromoted, entry.Status)
	assert.Equal(t, skillPath, entry.SkillPath)
}

func TestPromoteTwiceIsTerminalError(t *testing.T) {
	s, _ := newTestStore(t)
	res, err := s.Record(SourceGenerated, "t", "d")
	require.NoError(t, err)

	_, err = s.Promote(SourceGenerated, res.Entry.Fingerprint, "once", "desc", "skills")
	require.NoError(t, err)

	_, err = s.Promote(SourceGenerated, res.Entry.Fingerprint, "twice", "desc", "skills")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestPromoteSlugConflict(t *testing.T) {
	s, root := newTestStore(t)
	res, err := s.Record(SourceGenerated, "t", "d")
	require.NoError(t, err)

	taken := filepath.Join(root, "cursor", "skills", "taken")
	require.NoError(t, os.MkdirAll(taken, 0755))
	existing := filepath.Join(taken, "SKILL.md")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0644))

	before := readLog(t, s, SourceGenerated)

	_, err = s.Promote(SourceGenerated, res.Entry.Fingerprint, "taken", "desc", "skills")
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)

	// Neither the log nor the existing directory may change.
	assert.Equal(t, before, readLog(t, s, SourceGenerated))
	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestPromoteValidation(t *testing.T) {
	s, _ := newTestStore(t)
	res, err := s.Record(SourceGenerated, "t", "d")
	require.NoError(t, err)
	fp := res.Entry.Fingerprint

	var verr *ValidationError
	cases := []struct {
		name                      string
		slug, description, target string
	}{
		{"empty slug", "", "desc", "skills"},
		{"slug with separator", "a/b", "desc", "skills"},
		{"slug with traversal", "..", "desc", "skills"},
		{"slug with spaces", "two words", "desc", "skills"},
		{"empty description", "ok-slug", "", "skills"},
		{"unknown target", "ok-slug", "desc", "skills-vscode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Promote(SourceGenerated, fp, tc.slug, tc.description, tc.target)
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestPromoteNotFoundLeavesLogUntouched(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Record(SourceGenerated, "t", "d")
	require.NoError(t, err)
	before := readLog(t, s, SourceGenerated)

	_, err = s.Promote(SourceGenerated, "deadbeef", "slug-x", "desc", "skills")
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, before, readLog(t, s, SourceGenerated))
}

func TestPromoteFailedDescriptorWriteLeavesLogUntouched(t *testing.T) {
	s, root := newTestStore(t)
	res, err := s.Record(SourceGenerated, "t", "d")
	require.NoError(t, err)
	before := readLog(t, s, SourceGenerated)

	// Occupy the collection path with a plain file so the directory write
	// cannot succeed.
	collection := filepath.Join(root, "cursor", "skills")
	require.NoError(t, os.MkdirAll(filepath.Dir(collection), 0755))
	require.NoError(t, os.WriteFile(collection, []byte("file, not dir"), 0644))

	_, err = s.Promote(SourceGenerated, res.Entry.Fingerprint, "blocked", "desc", "skills")
	require.Error(t, err)
	assert.Equal(t, before, readLog(t, s, SourceGenerated))

	log, err := s.Load(SourceGenerated)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, log.Entries[0].Status)
}

func TestPromoteIntoSecondCollection(t *testing.T) {
	s, root := newTestStore(t)
	res, err := s.Record(SourceManual, "t", "d")
	require.NoError(t, err)

	skillPath, err := s.Promote(SourceManual, res.Entry.Fingerprint, "editor-habit", "desc", "skills-cursor")
	require.NoError(t, err)
	assert.Equal(t, "cursor/skills-cursor/editor-habit/SKILL.md", skillPath)

	_, err = os.Stat(filepath.Join(root, "cursor", "skills-cursor", "editor-habit", "SKILL.md"))
	require.NoError(t, err)
}
