package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casefort/LitIntel/pkg/types/common"
)

func newMomentumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "momentum <case-id>",
		Short: "Report the current case momentum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, err := GetAppContext(cmd)
			if err != nil {
				return err
			}

			rt, err := buildRuntime(cmd.Context(), appCtx)
			if err != nil {
				return err
			}
			defer rt.Close()

			momentum, err := rt.engine.Momentum(cmd.Context(), common.ID(args[0]))
			if err != nil {
				return err
			}

			if strings.EqualFold(appCtx.OutputFormat, "json") {
				return printJSON(cmd, momentum)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Case %s momentum: %s (score %d)\n", momentum.CaseID, momentum.State, momentum.Score)
			fmt.Fprintf(out, "%s\n", momentum.Explanation)
			for _, shift := range momentum.Shifts {
				sign := "+"
				if !shift.Positive {
					sign = "-"
				}
				fmt.Fprintf(out, "  %s%d %s: %s\n", sign, shift.Weight, shift.Factor, shift.Description)
			}
			return nil
		},
	}
}
