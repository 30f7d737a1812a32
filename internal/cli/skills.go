package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSkillsCmd creates the 'skills' command group: list, show, and lint
// the skill collections.
func NewSkillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Browse and check the skill collections",
	}

	cmd.AddCommand(newSkillsListCmd())
	cmd.AddCommand(newSkillsShowCmd())
	cmd.AddCommand(newSkillsLintCmd())

	return cmd
}

func newSkillsListCmd() *cobra.Command {
	var (
		rootDir string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls"},
		Short:   "List skills, optionally filtered by a substring match",
		Example: `  skillhub skills list
  skillhub skills list retry
  skillhub skills list --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runSkillsList(rootDir, query, asJSON)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

func runSkillsList(rootDir, query string, asJSON bool) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	catalog := newCatalog(cfg)
	list, err := catalog.List(query)
	if err != nil {
		return err
	}

	if asJSON {
		out, err := formatJSON(list)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if len(list) == 0 {
		if query != "" {
			fmt.Printf("No skills match %q\n", query)
		} else {
			fmt.Println("No skills yet. Promote an approved entry with 'skillhub promote'.")
		}
		return nil
	}

	fmt.Printf("%d skill(s):\n\n", len(list))
	for _, s := range list {
		fmt.Printf("  %s (%s)\n", colorGreen(s.Name), s.Source)
		fmt.Printf("    %s\n", s.Description)
		fmt.Printf("    %s\n", s.Path)
	}
	return nil
}

func newSkillsShowCmd() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:     "show <path>",
		Short:   "Print a skill descriptor",
		Example: `  skillhub skills show cursor/skills/retry-backoff/SKILL.md`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillsShow(rootDir, args[0])
		},
	}

	addRootFlag(cmd, &rootDir)
	return cmd
}

func runSkillsShow(rootDir, path string) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	catalog := newCatalog(cfg)
	content, err := catalog.Read(path)
	if err != nil {
		return err
	}
	fmt.Print(content)
	return nil
}

func newSkillsLintCmd() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:     "lint",
		Short:   "Check skill directories for missing or malformed descriptors",
		Example: `  skillhub skills lint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillsLint(rootDir)
		},
	}

	addRootFlag(cmd, &rootDir)
	return cmd
}

func runSkillsLint(rootDir string) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	catalog := newCatalog(cfg)
	problems, err := catalog.Lint()
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		fmt.Println(colorGreen("OK") + " all skill directories have valid descriptors")
		return nil
	}

	for _, p := range problems {
		fmt.Printf("%s %s: %s\n", colorRed("problem"), p.Path, p.Message)
	}
	return fmt.Errorf("%d problem(s) found", len(problems))
}
