package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/config"
	"github.com/khanglvm/skillhub/internal/learning"
	"github.com/khanglvm/skillhub/internal/storage"
)

// NewPromoteCmd creates the 'promote' command for turning an entry into
// a skill directory.
func NewPromoteCmd() *cobra.Command {
	var (
		rootDir     string
		source      string
		slug        string
		description string
		target      string
	)

	cmd := &cobra.Command{
		Use:   "promote <fingerprint>",
		Short: "Promote a learning entry into a skill directory",
		Long: `Promote a learning entry by fingerprint.

Promotion writes a SKILL.md descriptor under the target collection and
marks the entry promoted. Promotion is terminal: the entry can no longer
be reviewed or promoted again. The slug must be lowercase-hyphenated and
must not collide with an existing skill directory.`,
		Example: `  skillhub promote 3f9a1c... --slug retry-backoff --description "Retry with exponential backoff"

  # Promote into the skills-cursor collection
  skillhub promote 3f9a1c... --slug batch-writes --description "Batch writes" --target skills-cursor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromote(rootDir, source, args[0], slug, description, target)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().StringVarP(&source, "source", "s", "manual", "Entry log: manual or generated")
	cmd.Flags().StringVar(&slug, "slug", "", "Skill directory name (lowercase-hyphenated)")
	cmd.Flags().StringVar(&description, "description", "", "One-line skill description")
	cmd.Flags().StringVarP(&target, "target", "t", config.TargetSkills,
		"Target collection: "+strings.Join(config.TargetNames, " or "))
	cmd.MarkFlagRequired("slug")
	cmd.MarkFlagRequired("description")

	return cmd
}

func runPromote(rootDir, sourceName, fingerprint, slug, description, target string) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	source, err := learning.ParseSource(sourceName)
	if err != nil {
		return err
	}

	store := newStore(cfg)
	skillPath, err := store.Promote(source, fingerprint, slug, description, target)
	if err != nil {
		return err
	}

	actions := storage.Open(cfg.ActionDBPath())
	defer actions.Close()
	actions.Append(storage.ActionRecord{
		Type:      storage.ActionPromote,
		Title:     slug,
		Source:    sourceName,
		Status:    string(learning.StatusPromoted),
		SkillPath: skillPath,
	})

	fmt.Printf("%s skill written to %s\n", colorGreen("Promoted:"), skillPath)
	return nil
}
