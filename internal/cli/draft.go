package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/teamdraft/internal/model"
)

func newDrawCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw teams from the roster",
		Long: `Draw two teams from the roster.

Modes:
  instant     shuffle and split in one step
  sequential  spin the wheel once per player (follow it with "watch")`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.DraftState

			if err := client.Post("/api/v1/draw", map[string]string{"mode": mode}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(model.DrawModeInstant), "Draw mode: instant, sequential")

	return cmd
}

func newPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the wheel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return postDraft(cmd, "/api/v1/draft/pause")
		},
	}
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused wheel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return postDraft(cmd, "/api/v1/draft/resume")
		},
	}
}

func postDraft(cmd *cobra.Command, path string) error {
	var result model.DraftState

	if err := client.Post(path, nil, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the roster, cancel any draft and reset the toss",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.Session

			if err := client.Post("/api/v1/reset", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
