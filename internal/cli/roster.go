package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/teamdraft/internal/api/response"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster commands",
	}

	cmd.AddCommand(newRosterListCmd())
	cmd.AddCommand(newRosterAddCmd())
	cmd.AddCommand(newRosterBulkCmd())
	cmd.AddCommand(newRosterRemoveCmd())
	cmd.AddCommand(newRosterClearCmd())

	return cmd
}

func newRosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Roster

			if err := client.Get("/api/v1/roster", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRosterAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a player to the roster",
		Long:  "Add a player. Names are trimmed; empty names and duplicates are ignored, as are adds to a full roster.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.AddPlayer

			body := map[string]string{"name": strings.Join(args, " ")}
			if err := client.Post("/api/v1/roster", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRosterBulkCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "bulk [names...]",
		Short: "Add several players at once",
		Long: `Add several players at once. Names come from the arguments, or one per
line from --file (use - for stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, "\n")
			if file != "" {
				data, err := readInput(file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no names given")
			}

			var result response.BulkAdd
			if err := client.Post("/api/v1/roster/bulk", map[string]string{"text": text}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read names from a file, one per line")

	return cmd
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func newRosterRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a player from the roster",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Roster

			name := strings.Join(args, " ")
			if err := client.Delete("/api/v1/roster/"+url.PathEscape(name), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRosterClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every player from the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/roster", nil); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Roster cleared")
			return nil
		},
	}
}
