package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/teamdraft/internal/api/response"
	"github.com/mcoot/teamdraft/internal/model"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Session settings",
	}

	cmd.AddCommand(newMapCountCmd())

	return cmd
}

func newMapCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map-count [1|3|5]",
		Short: "Show or set the preferred number of maps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Settings

			if len(args) == 0 {
				if err := client.Get("/api/v1/settings/map-count", &result); err != nil {
					return err
				}
			} else {
				count, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid map count: %s", args[0])
				}
				if err := client.Put("/api/v1/settings/map-count", map[string]int{"map_count": count}, &result); err != nil {
					return err
				}
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the drawn teams in Discord format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := client.GetText("/api/v1/export")
			if err != nil {
				return err
			}

			if cfg.Output == "json" {
				NewOutput(cfg.Output, cmd.OutOrStdout()).Print(map[string]string{"text": text})
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show roster, draft, toss and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.Session

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
