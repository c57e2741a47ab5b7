package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Shared game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameDropCmd())
	cmd.AddCommand(newGameAnswerCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game and wait for an opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get the current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result Game

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a game as the second player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <id> <column>",
		Short: "Drop your piece into a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			column, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid column: %w", err)
			}

			req := map[string]int{"column": column}
			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/drop", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <id> <translation>",
		Short: "Answer the pending vocabulary question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			req := map[string]string{"answer": args[1]}
			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/answer", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Restart the game (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/reset", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete the game (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s", id)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}
