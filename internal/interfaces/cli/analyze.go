package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func newAnalyzeCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "analyze <case-id>",
		Short: "Run a full strategic analysis of one case",
		Long: "Loads the case file, runs the signal detectors, and prints the\n" +
			"sanitized analysis: leverage points, weak spots, compliance issues,\n" +
			"time pressure, behaviour predictions, strategies and momentum.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, err := GetAppContext(cmd)
			if err != nil {
				return err
			}
			caseID := common.ID(args[0])

			rt, err := buildRuntime(cmd.Context(), appCtx)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !noCache && rt.cache != nil {
				if cached, cacheErr := rt.cache.Get(cmd.Context(), caseID); cacheErr == nil {
					return printAnalysis(cmd, cached)
				}
			}

			result, err := rt.engine.Analyze(cmd.Context(), caseID)
			if err != nil {
				return err
			}

			if rt.cache != nil {
				if cacheErr := rt.cache.Set(cmd.Context(), result.Analysis, 0); cacheErr != nil {
					rt.logger.Warn("failed to cache analysis", logging.Err(cacheErr))
				}
			}
			return printAnalysis(cmd, result.Analysis)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the analysis cache")
	return cmd
}

func printAnalysis(cmd *cobra.Command, a *insight.Analysis) error {
	appCtx, err := GetAppContext(cmd)
	if err == nil && strings.EqualFold(appCtx.OutputFormat, "json") {
		return printJSON(cmd, a)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Case %s  (%s, acting for %s)\n", a.CaseID, a.PracticeArea, a.Role.Role)
	fmt.Fprintf(out, "Momentum: %s (score %d) — %s\n\n", a.Momentum.State, a.Momentum.Score, a.Momentum.Explanation)

	if len(a.LeveragePoints) > 0 {
		rows := make([][]string, 0, len(a.LeveragePoints))
		for _, p := range a.LeveragePoints {
			rows = append(rows, []string{string(p.Type), string(p.Severity), p.Rationale})
		}
		fmt.Fprintln(out, "Leverage points:")
		fmt.Fprint(out, formatTable([]string{"TYPE", "SEVERITY", "RATIONALE"}, rows))
		fmt.Fprintln(out)
	}

	if len(a.WeakSpots) > 0 {
		rows := make([][]string, 0, len(a.WeakSpots))
		for _, w := range a.WeakSpots {
			rows = append(rows, []string{string(w.Type), string(w.Severity), w.Rationale})
		}
		fmt.Fprintln(out, "Weak spots:")
		fmt.Fprint(out, formatTable([]string{"TYPE", "SEVERITY", "RATIONALE"}, rows))
		fmt.Fprintln(out)
	}

	if len(a.Strategies) > 0 {
		rows := make([][]string, 0, len(a.Strategies))
		for _, s := range a.Strategies {
			rows = append(rows, []string{s.Route, s.Title, string(s.SuccessProbability), s.Timeframe})
		}
		fmt.Fprintln(out, "Strategies:")
		fmt.Fprint(out, formatTable([]string{"ROUTE", "TITLE", "PROBABILITY", "TIMEFRAME"}, rows))
		fmt.Fprintln(out)
	}

	if len(a.MissingEvidence) > 0 {
		fmt.Fprintln(out, "Missing evidence:")
		for _, m := range a.MissingEvidence {
			fmt.Fprintf(out, "  - %s\n", m.Label())
		}
		fmt.Fprintln(out)
	}

	if len(a.DegradedSignals) > 0 {
		fmt.Fprintf(out, "Degraded signals: %s\n", strings.Join(a.DegradedSignals, ", "))
	}
	return nil
}
