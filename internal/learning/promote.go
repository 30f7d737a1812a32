package learning

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DescriptorFileName is the skill descriptor file written on promotion.
const DescriptorFileName = "SKILL.md"

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSlug checks that a slug is a safe directory name: lowercase
// letters, digits and hyphens only, so it can never escape the collection
// via separators or traversal sequences.
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Message: "slug must not be empty"}
	}
	if !slugRe.MatchString(slug) {
		return &ValidationError{Message: fmt.Sprintf("invalid slug %q: use lowercase letters, digits and hyphens", slug)}
	}
	return nil
}

// Promote materializes the addressed entry as a new skill descriptor under
// {collection}/{slug}/SKILL.md and marks the entry promoted. The
// descriptor is written before the log: if the filesystem write fails the
// log is never touched, and if the log rewrite fails afterwards the result
// is an orphaned skill directory the operator can remove by hand.
//
// An existing slug directory is always a conflict, even if its contents
// would be identical.
func (s *Store) Promote(source Source, fingerprint, slug, description, target string) (string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	description = strings.TrimSpace(description)

	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	if description == "" {
		return "", &ValidationError{Message: "description must not be empty"}
	}
	collection, err := s.collectionDir(target)
	if err != nil {
		return "", err
	}

	log, entry, err := s.findForUpdate(source, fingerprint)
	if err != nil {
		return "", err
	}
	if entry.DisplayStatus() == StatusPromoted {
		return "", &ValidationError{Message: "entry is already promoted; promoted is terminal"}
	}

	skillDir := filepath.Join(collection, slug)
	if _, err := os.Stat(skillDir); err == nil {
		return "", &ConflictError{Path: skillDir}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check skill directory: %w", err)
	}

	descriptorPath := filepath.Join(skillDir, DescriptorFileName)
	if err := writeDescriptor(descriptorPath, slug, description, entry); err != nil {
		return "", err
	}

	skillPath, err := filepath.Rel(s.repoRoot, descriptorPath)
	if err != nil {
		skillPath = descriptorPath
	}
	skillPath = filepath.ToSlash(skillPath)

	entry.Status = StatusPromoted
	entry.ReviewNote = "Promoted to " + skillPath
	entry.SkillPath = skillPath

	if err := Save(s.Path(source), log); err != nil {
		return "", fmt.Errorf("skill written to %s but log update failed: %w", skillPath, err)
	}
	return skillPath, nil
}

// writeDescriptor creates the skill directory and its SKILL.md.
func writeDescriptor(path, slug, description string, entry *Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "name: %s\n", slug)
	fmt.Fprintf(&b, "description: %s\n", description)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", entry.Title)
	b.WriteString("Use this skill when this pattern applies in daily work.\n\n")
	b.WriteString("## Guidance\n\n")
	b.WriteString("- Keep the implementation concise and consistent with project conventions.\n")
	b.WriteString("- Apply the pattern intentionally; avoid using it where it does not fit.\n")
	b.WriteString("- Add examples in this skill over time as usage matures.\n\n")
	b.WriteString("## Source\n\n")
	fmt.Fprintf(&b, "- learning fingerprint: `%s`\n", entry.Fingerprint)
	fmt.Fprintf(&b, "- original details: %s\n", entry.Details)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write skill descriptor: %w", err)
	}
	return nil
}
