package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casefort/LitIntel/pkg/types/common"
)

func newDeltaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delta <case-id>",
		Short: "Re-analyse a case and report what changed since the last run",
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

			result, err := rt.engine.Analyze(cmd.Context(), common.ID(args[0]))
			if err != nil {
				return err
			}
			if result.Delta == nil {
				return printResult(cmd, "snapshot history unavailable, no delta computed")
			}

			if strings.EqualFold(appCtx.OutputFormat, "json") {
				return printJSON(cmd, result.Delta)
			}

			out := cmd.OutOrStdout()
			for _, note := range result.Delta.Notes {
				fmt.Fprintln(out, note)
			}
			return nil
		},
	}
}
