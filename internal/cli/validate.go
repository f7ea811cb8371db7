package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treekit/lineage/pkg/member"
)

// validateCommand creates the validate command for linting member records.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [family.json]",
		Short: "Check member records for referential problems",
		Long: `Check member records for referential problems.

The validate command reports duplicate IDs, dangling parent and spouse
references, asymmetric spouse links, and ancestry cycles. Findings are
advisory: the layout engine tolerates all of them, but they usually point
at data-entry mistakes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when findings exist")

	return cmd
}

// runValidate lints the members file and prints every finding.
func runValidate(input string, strict bool) error {
	members, err := member.ReadMembersFile(input)
	if err != nil {
		return fmt.Errorf("load members %s: %w", input, err)
	}

	findings := member.Lint(members)

	printKeyValue("Members", fmt.Sprintf("%d", members.Len()))
	printKeyValue("Roots", fmt.Sprintf("%d", len(members.Roots())))
	printKeyValue("Findings", fmt.Sprintf("%d", len(findings)))
	printNewline()

	if len(findings) == 0 {
		printSuccess("No problems found")
		return nil
	}

	for _, f := range findings {
		printWarning("%s", f.String())
	}

	if strict {
		return fmt.Errorf("%d problems found", len(findings))
	}
	printNewline()
	printDetail("Findings are advisory; 'lineage layout' will still succeed")
	return nil
}
