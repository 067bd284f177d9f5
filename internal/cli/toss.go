package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/teamdraft/internal/model"
)

func newTossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toss",
		Short: "Decide starting sides",
	}

	cmd.AddCommand(newTossStartCmd())
	cmd.AddCommand(newTossCallCmd())
	cmd.AddCommand(newTossSideCmd())
	cmd.AddCommand(newTossResetCmd())
	cmd.AddCommand(newTossGetCmd())

	return cmd
}

func newTossStartCmd() *cobra.Command {
	var (
		mode      string
		preferred string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the side decision for the drawn teams",
		Long: `Start the side decision.

With --mode coin Team 1 calls heads or tails and the winner picks a side.
With --mode auto the engine makes the call and submits --prefer for the winner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.TossState

			body := map[string]string{"side_mode": mode, "preferred_side": preferred}
			if err := client.Post("/api/v1/toss", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(model.SideModeCoin), "Side mode: coin, auto")
	cmd.Flags().StringVar(&preferred, "prefer", string(model.SideAttack), "Preferred side in auto mode: attack, defense")

	return cmd
}

func newTossCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "call <heads|tails>",
		Short:     "Submit Team 1's call",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.Heads), string(model.Tails)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return postToss(cmd, "/api/v1/toss/call", map[string]string{"call": args[0]})
		},
	}
}

func newTossSideCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "side <attack|defense>",
		Short:     "Submit the toss winner's starting side",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.SideAttack), string(model.SideDefense)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return postToss(cmd, "/api/v1/toss/side", map[string]string{"side": args[0]})
		},
	}
}

func postToss(cmd *cobra.Command, path string, body any) error {
	var result model.TossState

	if err := client.Post(path, body, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
	return nil
}

func newTossGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the side decision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.TossState

			if err := client.Get("/api/v1/toss", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newTossResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Return the side decision to idle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.TossState

			if err := client.Delete("/api/v1/toss", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
