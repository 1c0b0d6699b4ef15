package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casefort/LitIntel/internal/analysis/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate the analysis rule table",
	}
	cmd.AddCommand(newRulesValidateCmd(), newRulesShowCmd())
	return cmd
}

func newRulesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a rule-table override file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := rules.Load(args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, fmt.Sprintf("rule table %s is valid (%s)", args[0], tableSummary(table)))
		},
	}
}

func newRulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active rule table",
		Long: "Prints the rule table the engine would use: the file named by\n" +
			"analysis.rules_path when set, otherwise the compiled-in defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, err := GetAppContext(cmd)
			if err != nil {
				return err
			}

			table := rules.Default()
			source := "defaults"
			if path := appCtx.Config.Analysis.RulesPath; path != "" {
				table, err = rules.Load(path)
				if err != nil {
					return err
				}
				source = path
			}

			if strings.EqualFold(appCtx.OutputFormat, "json") {
				return printJSON(cmd, table)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule table (%s): %s\n", source, tableSummary(table))
			return nil
		},
	}
}

func tableSummary(t *rules.Table) string {
	return fmt.Sprintf("%d claimant / %d defendant role patterns, %d harm terms, %d sanitizer rules",
		len(t.Role.Claimant), len(t.Role.Defendant), len(t.Merits.Harm), len(t.Sanitize))
}
