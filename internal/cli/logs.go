package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/storage"
)

// NewLogsCmd creates the 'logs' command: recent review and promote
// actions from the action log.
func NewLogsCmd() *cobra.Command {
	var (
		rootDir string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent review and promote actions",
		Example: `  skillhub logs
  skillhub logs --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(rootDir, limit)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum actions to list")

	return cmd
}

func runLogs(rootDir string, limit int) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	actions := storage.Open(cfg.ActionDBPath())
	defer actions.Close()

	records, err := actions.Recent(limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No actions recorded yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("[%s] %s %q (%s)", rec.Timestamp.Format("2006-01-02 15:04:05"), rec.Type, rec.Title, rec.Source)
		if rec.Status != "" {
			fmt.Printf(" -> %s", rec.Status)
		}
		fmt.Println()
		if rec.Reason != "" {
			fmt.Printf("    reason: %s\n", rec.Reason)
		}
		if rec.SkillPath != "" {
			fmt.Printf("    skill: %s\n", rec.SkillPath)
		}
	}
	return nil
}
