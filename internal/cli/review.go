package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/learning"
	"github.com/khanglvm/skillhub/internal/storage"
)

// NewReviewCmd creates the 'review' command for approving or rejecting
// a pending entry.
func NewReviewCmd() *cobra.Command {
	var (
		rootDir string
		source  string
		status  string
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "review <fingerprint>",
		Short: "Approve or reject a learning entry",
		Long: `Review a learning entry by fingerprint.

Approving needs no reason; rejecting requires one. Reviews can be
revisited (approved -> rejected and back) until the entry is promoted,
after which it is immutable.`,
		Example: `  skillhub review 3f9a1c... --status approved
  skillhub review 3f9a1c... --status rejected --reason "duplicate of retry-backoff"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(rootDir, source, args[0], status, reason)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().StringVarP(&source, "source", "s", "manual", "Entry log: manual or generated")
	cmd.Flags().StringVar(&status, "status", "", "New status: approved or rejected")
	cmd.Flags().StringVar(&reason, "reason", "", "Review note (required when rejecting)")
	cmd.MarkFlagRequired("status")

	return cmd
}

func runReview(rootDir, sourceName, fingerprint, statusName, reason string) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	source, err := learning.ParseSource(sourceName)
	if err != nil {
		return err
	}
	status, err := learning.ParseStatus(statusName)
	if err != nil {
		return err
	}

	store := newStore(cfg)
	entry, err := store.Review(source, fingerprint, status, reason)
	if err != nil {
		return err
	}

	actions := storage.Open(cfg.ActionDBPath())
	defer actions.Close()
	actions.Append(storage.ActionRecord{
		Type:   storage.ActionReview,
		Title:  entry.Title,
		Source: string(entry.Source),
		Status: string(entry.Status),
		Reason: entry.ReviewNote,
	})

	fmt.Printf("%s %q\n", statusBadge(entry.Status), entry.Title)
	if entry.ReviewNote != "" {
		fmt.Printf("  note: %s\n", entry.ReviewNote)
	}
	return nil
}
