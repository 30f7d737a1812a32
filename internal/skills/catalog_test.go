package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, dir, slug, content string) {
	t.Helper()
	skillDir := filepath.Join(dir, slug)
	require.NoError(t, os.MkdirAll(skillDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, DescriptorFileName), []byte(content), 0644))
}

func newTestCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	root := t.TempDir()
	cols := []Collection{
		{Name: "skills", Dir: filepath.Join(root, "cursor", "skills")},
		{Name: "skills-cursor", Dir: filepath.Join(root, "cursor", "skills-cursor")},
	}
	return NewCatalog(root, cols), root
}

const retrySkill = `---
name: retry-backoff
description: Retry transient failures with exponential backoff
---

# Use retry with backoff
`

func TestListAcrossCollections(t *testing.T) {
	c, root := newTestCatalog(t)
	writeSkill(t, filepath.Join(root, "cursor", "skills"), "retry-backoff", retrySkill)
	writeSkill(t, filepath.Join(root, "cursor", "skills-cursor"), "editor-habit", `---
name: editor-habit
description: Keep buffers tidy
---
`)

	items, err := c.List("")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "retry-backoff", items[0].Name)
	assert.Equal(t, "skills", items[0].Source)
	assert.Equal(t, "cursor/skills/retry-backoff/SKILL.md", items[0].Path)
	assert.Equal(t, "skills-cursor", items[1].Source)
}

func TestListSubstringSearch(t *testing.T) {
	c, root := newTestCatalog(t)
	writeSkill(t, filepath.Join(root, "cursor", "skills"), "retry-backoff", retrySkill)
	writeSkill(t, filepath.Join(root, "cursor", "skills"), "other", `---
name: other
description: Unrelated
---
`)

	// Match on description, case-insensitive.
	items, err := c.List("TRANSIENT")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "retry-backoff", items[0].Name)

	// Match on source name.
	items, err = c.List("skills-cursor")
	require.NoError(t, err)
	assert.Empty(t, items)

	// No match.
	items, err = c.List("nothing-here")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListFallsBackToDirectoryName(t *testing.T) {
	c, root := newTestCatalog(t)
	writeSkill(t, filepath.Join(root, "cursor", "skills"), "bare", "no frontmatter at all\n")

	items, err := c.List("")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "bare", items[0].Name)
	assert.Equal(t, "No description", items[0].Description)
}

func TestReadDescriptor(t *testing.T) {
	c, root := newTestCatalog(t)
	writeSkill(t, filepath.Join(root, "cursor", "skills"), "retry-backoff", retrySkill)

	content, err := c.Read("cursor/skills/retry-backoff/SKILL.md")
	require.NoError(t, err)
	assert.Equal(t, retrySkill, content)
}

func TestReadMissingDescriptorIsNotFound(t *testing.T) {
	c, _ := newTestCatalog(t)

	_, err := c.Read("cursor/skills/no-such-skill/SKILL.md")
	require.Error(t, err)

	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)
	assert.Equal(t, "cursor/skills/no-such-skill/SKILL.md", nferr.Path)
}

func TestReadRejectsUnsafePaths(t *testing.T) {
	c, _ := newTestCatalog(t)

	_, err := c.Read("../outside/SKILL.md")
	assert.Error(t, err)

	_, err = c.Read("cursor/skills/x/notes.md")
	assert.Error(t, err)

	_, err = c.Read("")
	assert.Error(t, err)
}

func TestParseFrontmatter(t *testing.T) {
	fm, err := ParseFrontmatter(retrySkill)
	require.NoError(t, err)
	assert.Equal(t, "retry-backoff", fm.Name)
	assert.Equal(t, "Retry transient failures with exponential backoff", fm.Description)

	_, err = ParseFrontmatter("# no header\n")
	assert.Error(t, err)

	_, err = ParseFrontmatter("---\nname: x\nnever closed\n")
	assert.Error(t, err)
}

func TestLintFindsProblems(t *testing.T) {
	c, root := newTestCatalog(t)
	skillsDir := filepath.Join(root, "cursor", "skills")

	writeSkill(t, skillsDir, "good", retrySkill)
	writeSkill(t, skillsDir, "no-front", "just a body\n")
	writeSkill(t, skillsDir, "no-desc", "---\nname: no-desc\n---\nbody\n")
	require.NoError(t, os.MkdirAll(filepath.Join(skillsDir, "empty-dir"), 0755))

	problems, err := c.Lint()
	require.NoError(t, err)

	var paths []string
	for _, p := range problems {
		paths = append(paths, p.Path)
	}
	assert.Contains(t, paths, "cursor/skills/no-front/SKILL.md")
	assert.Contains(t, paths, "cursor/skills/no-desc/SKILL.md")
	assert.Contains(t, paths, "cursor/skills/empty-dir/SKILL.md")
	assert.NotContains(t, paths, "cursor/skills/good/SKILL.md")
	assert.Len(t, problems, 3)
}
