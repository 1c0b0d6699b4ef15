package cli

import (
	"os"
	"os/user"

	"github.com/spf13/cobra"

	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func newRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <case-id>",
		Short: "Enqueue an analysis request for the background worker",
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

			if rt.producer == nil {
				return apperrors.InvalidState("event bus is not configured; enable kafka to enqueue requests")
			}

			caseID := common.ID(args[0])
			if err := rt.producer.RequestAnalysis(cmd.Context(), caseID, requester()); err != nil {
				return err
			}
			return printResult(cmd, "analysis request enqueued for case "+args[0])
		},
	}
}

func requester() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return "cli:" + u.Username
	}
	if host, err := os.Hostname(); err == nil {
		return "cli:" + host
	}
	return "cli"
}
