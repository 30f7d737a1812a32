package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDashboardCmd creates the 'dashboard' command: a terminal summary of
// the learning logs.
func NewDashboardCmd() *cobra.Command {
	var (
		rootDir string
		limit   int
	)

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show entry counts and recent learning entries",
		Example: `  skillhub dashboard
  skillhub dashboard --limit 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(rootDir, limit)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to list")

	return cmd
}

func runDashboard(rootDir string, limit int) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	store := newStore(cfg)
	overview, err := store.Overview(limit)
	if err != nil {
		return err
	}

	c := overview.Counts
	fmt.Printf("Learning entries: %d total\n", c.Total())
	fmt.Printf("  %s %d   %s %d   %s %d   %s %d\n\n",
		colorYellow("pending"), c.Pending,
		colorGreen("approved"), c.Approved,
		colorRed("rejected"), c.Rejected,
		colorCyan("promoted"), c.Promoted,
	)

	if len(overview.All) == 0 {
		fmt.Println("No entries recorded yet. Run 'skillhub record' to add one.")
		return nil
	}

	for _, e := range overview.All {
		fmt.Printf("%s  [%s] %s (%s)\n", statusBadge(e.DisplayStatus()), e.Timestamp, e.Title, e.Source)
		fmt.Printf("    fingerprint: %s\n", shortFingerprint(e.Fingerprint))
		if e.SkillPath != "" {
			fmt.Printf("    skill: %s\n", e.SkillPath)
		}
	}
	return nil
}
