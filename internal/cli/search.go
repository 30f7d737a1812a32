package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/skillhub/internal/search"
)

// NewSearchCmd creates the 'search' command: full-text search over the
// learning entries.
func NewSearchCmd() *cobra.Command {
	var (
		rootDir string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across learning entries",
		Long: `Search entry titles and details across both logs.

Matching is full-text (stemmed, ranked by relevance), so "retries" finds
entries that mention "retry".`,
		Example: `  skillhub search backoff
  skillhub search "connection pool" --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootDir, args[0], limit)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum results")

	return cmd
}

func runSearch(rootDir, query string, limit int) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	store := newStore(cfg)
	entries, err := store.Union()
	if err != nil {
		return err
	}

	idx, err := search.NewIndex(entries)
	if err != nil {
		return err
	}
	defer idx.Close()

	results, err := idx.Search(query, limit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Printf("No entries match %q\n", query)
		return nil
	}

	fmt.Printf("%d match(es):\n\n", len(results))
	for _, r := range results {
		e := r.Entry
		fmt.Printf("%s  %s (%s, score %.2f)\n", statusBadge(e.DisplayStatus()), e.Title, e.Source, r.Score)
		fmt.Printf("    fingerprint: %s\n", shortFingerprint(e.Fingerprint))
	}
	return nil
}
