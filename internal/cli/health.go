package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/teamdraft/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the draft server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Health

			start := time.Now()
			if err := client.Get("/api/v1/health", &result); err != nil {
				return fmt.Errorf("%s unreachable: %w", cfg.ServerURL, err)
			}

			if cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s answered in %s\n", cfg.ServerURL, time.Since(start).Round(time.Millisecond))
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
