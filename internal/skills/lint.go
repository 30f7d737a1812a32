package skills

import (
	"fmt"
	"os"
	"path/filepath"
)

// Problem is one lint finding.
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Lint checks every skill directory across the catalog's collections: the
// descriptor must exist, carry parseable frontmatter, and fill in both
// name and description. It returns findings, not an error, for content
// problems.
func (c *Catalog) Lint() ([]Problem, error) {
	var problems []Problem

	for _, col := range c.collections {
		dirs, err := os.ReadDir(col.Dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read collection %s: %w", col.Name, err)
		}

		for _, d := range dirs {
			if !d.IsDir() {
				continue
			}
			descriptor := filepath.Join(col.Dir, d.Name(), DescriptorFileName)
			rel := c.relPath(descriptor)

			data, err := os.ReadFile(descriptor)
			if err != nil {
				problems = append(problems, Problem{Path: rel, Message: "missing " + DescriptorFileName})
				continue
			}

			fm, err := ParseFrontmatter(string(data))
			if err != nil {
				problems = append(problems, Problem{Path: rel, Message: err.Error()})
				continue
			}
			if fm.Name == "" {
				problems = append(problems, Problem{Path: rel, Message: "frontmatter is missing name"})
			}
			if fm.Description == "" {
				problems = append(problems, Problem{Path: rel, Message: "frontmatter is missing description"})
			}
		}
	}
	return problems, nil
}
