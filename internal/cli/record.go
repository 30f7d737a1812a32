package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/learning"
)

// NewRecordCmd creates the 'record' command for capturing a learning entry.
func NewRecordCmd() *cobra.Command {
	var (
		rootDir string
		source  string
		details string
	)

	cmd := &cobra.Command{
		Use:   "record <title>",
		Short: "Record a learning entry into the manual or generated log",
		Long: `Record a learning entry.

The entry lands in the pending state and waits for review. Recording the
same title and details again is a no-op: entries are deduplicated by a
fingerprint over source, title, and details.

If --details is omitted you will be prompted to type the details on
stdin (finish with a blank line).`,
		Example: `  # Record a manually-written lesson
  skillhub record "Prefer context deadlines" -d "unbounded waits hang shutdown"

  # Record into the generated log (entries produced by tooling)
  skillhub record "Batch writes" -d "fewer fsyncs under load" --source generated`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd.OutOrStdout(), rootDir, source, args[0], details)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().StringVarP(&source, "source", "s", "manual", "Entry log: manual or generated")
	cmd.Flags().StringVarP(&details, "details", "d", "", "Entry details (prompted if omitted)")

	return cmd
}

func runRecord(out io.Writer, rootDir, sourceName, title, details string) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}
	if err := cfg.EnsureLayout(); err != nil {
		return err
	}

	source, err := learning.ParseSource(sourceName)
	if err != nil {
		return err
	}

	if strings.TrimSpace(details) == "" {
		fmt.Fprintln(out, "Enter details (finish with a blank line):")
		details = readMultilineInput()
	}

	store := newStore(cfg)
	res, err := store.Record(source, title, details)
	if err != nil {
		return err
	}

	// Duplicates are a no-op and never trigger the review reminder.
	if res.Duplicate {
		fmt.Fprintf(out, "Already recorded: %s (fingerprint %s)\n", res.Entry.Title, shortFingerprint(res.Entry.Fingerprint))
		return nil
	}

	fmt.Fprintf(out, "Recorded %q to the %s log\n", res.Entry.Title, source)
	fmt.Fprintf(out, "  fingerprint: %s\n", res.Entry.Fingerprint)

	pending, err := store.PendingCount()
	if err != nil {
		return err
	}
	if cfg.PendingReminder > 0 && pending >= cfg.PendingReminder {
		fmt.Fprintf(out, "\n%s %d entries are pending review. Run 'skillhub dashboard' or 'skillhub serve' to triage.\n",
			colorYellow("Reminder:"), pending)
	}

	return nil
}
