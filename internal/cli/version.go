package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/version"
)

// NewVersionCmd creates the 'version' command.
func NewVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Example: `  skillhub version
  skillhub version --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("skillhub %s\n", version.String())

			if !check {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			latest, err := version.CheckUpdate(ctx)
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if latest == "" {
				fmt.Println("Up to date.")
			} else {
				fmt.Printf("New version available: v%s (run 'skillhub update')\n", latest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&check, "check", "c", false, "Check GitHub for a newer release")

	return cmd
}

// NewUpdateCmd creates the 'update' command: self-update from the latest
// GitHub release.
func NewUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update skillhub to the latest release",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			latest, err := version.CheckUpdate(ctx)
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if latest == "" {
				fmt.Println("Already up to date.")
				return nil
			}

			fmt.Printf("Downloading v%s...\n", latest)
			tempPath, err := version.DownloadUpdate(ctx, latest)
			if err != nil {
				return err
			}

			if err := version.ApplyUpdate(tempPath); err != nil {
				return err
			}
			fmt.Printf("%s updated to v%s\n", colorGreen("Done:"), latest)
			return nil
		},
	}
}
