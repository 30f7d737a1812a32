/*
Package skills enumerates and validates skill descriptors.

A skill is a directory holding one SKILL.md file: YAML frontmatter with a
name and description, then a Markdown body. Skills live in collections
(one per promotion target) and are listed, searched and linted through the
Catalog.
*/
package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DescriptorFileName is the descriptor file each skill directory holds.
const DescriptorFileName = "SKILL.md"

// Skill is one listed descriptor.
type Skill struct {
	// Name from the frontmatter, falling back to the directory name.
	Name string `json:"name"`

	// Description from the frontmatter.
	Description string `json:"description"`

	// Source is the collection the skill belongs to.
	Source string `json:"source"`

	// Path is the descriptor path relative to the repo root.
	Path string `json:"path"`
}

// Frontmatter is the structured header of a SKILL.md file.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Collection is one skill directory tree, keyed by its promotion target.
type Collection struct {
	Name string
	Dir  string
}

// Catalog reads skills out of an ordered set of collections.
type Catalog struct {
	repoRoot    string
	collections []Collection
}

// NewCatalog creates a catalog over the given collections. Paths reported
// by List and accepted by Read are relative to repoRoot.
func NewCatalog(repoRoot string, collections []Collection) *Catalog {
	return &Catalog{repoRoot: repoRoot, collections: collections}
}

// List enumerates every skill descriptor, optionally filtered by query: a
// case-insensitive substring match against name, description or source.
func (c *Catalog) List(query string) ([]Skill, error) {
	var out []Skill
	query = strings.ToLower(query)

	for _, col := range c.collections {
		items, err := c.listCollection(col)
		if err != nil {
			return nil, err
		}
		for _, s := range items {
			if query != "" && !matches(s, query) {
				continue
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func matches(s Skill, query string) bool {
	return strings.Contains(strings.ToLower(s.Name), query) ||
		strings.Contains(strings.ToLower(s.Description), query) ||
		strings.Contains(strings.ToLower(s.Source), query)
}

// listCollection scans one collection directory. A missing collection is
// empty, not an error.
func (c *Catalog) listCollection(col Collection) ([]Skill, error) {
	dirs, err := os.ReadDir(col.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", col.Name, err)
	}

	var out []Skill
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		descriptor := filepath.Join(col.Dir, d.Name(), DescriptorFileName)
		data, err := os.ReadFile(descriptor)
		if err != nil {
			// Skill directories without a descriptor are skipped here and
			// reported by lint.
			continue
		}

		fm, _ := ParseFrontmatter(string(data))
		skill := Skill{
			Name:        fm.Name,
			Description: fm.Description,
			Source:      col.Name,
			Path:        c.relPath(descriptor),
		}
		if skill.Name == "" {
			skill.Name = d.Name()
		}
		if skill.Description == "" {
			skill.Description = "No description"
		}
		out = append(out, skill)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (c *Catalog) relPath(path string) string {
	rel, err := filepath.Rel(c.repoRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Read returns the raw content of one descriptor, addressed by repo-relative
// path. Only SKILL.md files inside the repo are served.
func (c *Catalog) Read(relPath string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("path is required")
	}
	if filepath.Base(relPath) != DescriptorFileName {
		return "", fmt.Errorf("only %s paths are allowed", DescriptorFileName)
	}

	full := filepath.Join(c.repoRoot, filepath.FromSlash(relPath))
	resolved, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	rootAbs, err := filepath.Abs(c.repoRoot)
	if err != nil {
		return "", err
	}
	if resolved != rootAbs && !strings.HasPrefix(resolved, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path: %s", relPath)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: relPath}
		}
		return "", err
	}
	return string(data), nil
}

// ParseFrontmatter extracts the YAML header between the leading "---"
// fences. Content without a fence parses as an empty frontmatter.
func ParseFrontmatter(content string) (Frontmatter, error) {
	var fm Frontmatter

	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return fm, fmt.Errorf("missing frontmatter")
	}
	block, _, ok := strings.Cut(rest, "\n---")
	if !ok {
		return fm, fmt.Errorf("unterminated frontmatter")
	}

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return fm, fmt.Errorf("invalid frontmatter: %w", err)
	}
	return fm, nil
}
