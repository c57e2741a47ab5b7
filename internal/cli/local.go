package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLocalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Local game commands (play against the bot)",
	}

	cmd.AddCommand(newLocalStartCmd())
	cmd.AddCommand(newLocalGetCmd())
	cmd.AddCommand(newLocalDropCmd())
	cmd.AddCommand(newLocalResetCmd())
	cmd.AddCommand(newLocalDeleteCmd())

	return cmd
}

func newLocalStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a game against the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LocalGame

			if err := client.Post("/api/v1/local", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLocalGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current local game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LocalGame

			if err := client.Get("/api/v1/local", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLocalDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <column>",
		Short: "Drop your piece; the bot replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid column: %w", err)
			}

			req := map[string]int{"column": column}
			var result LocalGame

			if err := client.Post("/api/v1/local/drop", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLocalResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restart the local game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LocalGame

			if err := client.Post("/api/v1/local/reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLocalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Abandon the local game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/local"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Local game deleted")
			return nil
		},
	}
}
