/*
Package main is the entry point for the skillhub CLI.

skillhub manages the learning-entry lifecycle of a repository: lessons
are recorded into flat-text logs, reviewed, and promoted into skill
directories that AI coding assistants pick up.

Usage:
  skillhub [command]

Available Commands:
  record      Record a learning entry
  review      Approve or reject an entry
  promote     Promote an entry into a skill directory
  dashboard   Show entry counts and recent entries
  search      Full-text search across entries
  skills      Browse and check the skill collections
  logs        Show recent review and promote actions
  serve       Run the review dashboard server
  sync        Mirror skill collections into an assistant config directory
  version     Show version information
  update      Update skillhub to the latest release

Examples:
  # Capture a lesson
  skillhub record "Prefer context deadlines" -d "unbounded waits hang shutdown"

  # Triage pending entries in the browser
  skillhub serve

  # Turn an approved entry into a skill
  skillhub promote <fingerprint> --slug retry-backoff --description "Retry with exponential backoff"
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/cli"
	"github.com/khanglvm/skillhub/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skillhub",
		Short: "Learning-entry lifecycle manager for AI assistant skills",
		Long: `skillhub keeps a repository's lessons-learned in reviewable flat-text
logs and promotes the good ones into skill directories.

Entries are recorded (manually or by tooling), deduplicated by content
fingerprint, reviewed as approved or rejected, and finally promoted:
promotion writes a SKILL.md descriptor that assistants like Cursor load
as a skill. Everything lives in plain files inside the repository, so
the whole lifecycle is diffable and survives code review.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(cli.NewRecordCmd())
	rootCmd.AddCommand(cli.NewReviewCmd())
	rootCmd.AddCommand(cli.NewPromoteCmd())
	rootCmd.AddCommand(cli.NewDashboardCmd())
	rootCmd.AddCommand(cli.NewSearchCmd())
	rootCmd.AddCommand(cli.NewSkillsCmd())
	rootCmd.AddCommand(cli.NewLogsCmd())
	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewSyncCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())
	rootCmd.AddCommand(cli.NewUpdateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
