package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/config"
	"github.com/khanglvm/skillhub/internal/syncdir"
)

// NewSyncCmd creates the 'sync' command: mirror the skill collections
// into an assistant config directory.
func NewSyncCmd() *cobra.Command {
	var (
		rootDir string
		dest    string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror skill collections into an assistant config directory",
		Long: `Mirror both skill collections into the configured destination.

Files missing from a collection are deleted from the mirror, so the
destination always matches the source. Patterns in sync.ignore are left
alone on both sides. With --watch, sync keeps running and re-mirrors on
every filesystem change.`,
		Example: `  skillhub sync --dest ~/.cursor
  skillhub sync --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(rootDir, dest, watch)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().StringVar(&dest, "dest", "", "Destination directory (overrides sync.dest)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep watching and re-sync on changes")

	return cmd
}

func runSync(rootDir, dest string, watch bool) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}
	if dest == "" {
		dest = cfg.Sync.Dest
	}
	if dest == "" {
		return fmt.Errorf("no sync destination: set --dest or sync.dest in skillhub.yaml")
	}

	pairs := []struct{ name, src string }{
		{config.TargetSkills, cfg.SkillsDir},
		{config.TargetSkillsCursor, cfg.SkillsCursorDir},
	}

	if watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, len(pairs))
		for _, p := range pairs {
			dst := filepath.Join(dest, p.name)
			fmt.Printf("Watching %s -> %s\n", p.src, dst)
			go func(src, dst string) {
				errCh <- syncdir.Watch(ctx, src, dst, cfg.Sync.Ignore)
			}(p.src, dst)
		}

		for range pairs {
			if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		}
		return nil
	}

	for _, p := range pairs {
		dst := filepath.Join(dest, p.name)
		stats, err := syncdir.Run(p.src, dst, cfg.Sync.Ignore)
		if err != nil {
			return fmt.Errorf("sync %s failed: %w", p.name, err)
		}
		fmt.Printf("%s -> %s: %d copied, %d deleted, %d ignored\n",
			p.name, dst, stats.Copied, stats.Deleted, stats.Ignored)
	}
	return nil
}
