/*
Package cli implements the skillhub command surface.

Each command lives in its own file with a NewXCmd constructor and a runX
implementation. Commands resolve configuration from the --root flag (the
repository the learning logs and skill collections live in) and build the
components they need themselves; there is no shared global state.
*/
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/config"
	"github.com/khanglvm/skillhub/internal/learning"
	"github.com/khanglvm/skillhub/internal/skills"
)

// addRootFlag registers the shared --root flag on a command.
func addRootFlag(cmd *cobra.Command, rootDir *string) {
	cmd.Flags().StringVarP(rootDir, "root", "r", ".", "Repository root (where learning/ and the skill collections live)")
}

// loadConfig resolves configuration for the given repo root.
func loadConfig(rootDir string) (*config.Config, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newStore builds the learning store for a resolved config.
func newStore(cfg *config.Config) *learning.Store {
	return learning.NewStore(cfg.RootDir, cfg.LearningDir, cfg.Collections())
}

// newCatalog builds the skill catalog for a resolved config.
func newCatalog(cfg *config.Config) *skills.Catalog {
	return skills.NewCatalog(cfg.RootDir, []skills.Collection{
		{Name: config.TargetSkills, Dir: cfg.SkillsDir},
		{Name: config.TargetSkillsCursor, Dir: cfg.SkillsCursorDir},
	})
}

// readMultilineInput reads lines from stdin until a blank line.
func readMultilineInput() string {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// statusBadge renders a display status with ANSI color.
func statusBadge(status learning.Status) string {
	switch status {
	case learning.StatusApproved:
		return colorGreen(string(status))
	case learning.StatusRejected:
		return colorRed(string(status))
	case learning.StatusPromoted:
		return colorCyan(string(status))
	default:
		return colorYellow(string(status))
	}
}

// colorGreen returns text with green ANSI color.
func colorGreen(s string) string {
	return "\033[32m" + s + "\033[0m"
}

// colorRed returns text with red ANSI color.
func colorRed(s string) string {
	return "\033[31m" + s + "\033[0m"
}

// colorYellow returns text with yellow ANSI color.
func colorYellow(s string) string {
	return "\033[33m" + s + "\033[0m"
}

// colorCyan returns text with cyan ANSI color.
func colorCyan(s string) string {
	return "\033[36m" + s + "\033[0m"
}

// formatJSON pretty-prints a value for --json output.
func formatJSON(data interface{}) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// shortFingerprint truncates a fingerprint for display.
func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
