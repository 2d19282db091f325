package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/arenafc/internal/api/response"
	"github.com/mcoot/arenafc/internal/model"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerUpdateCmd())
	cmd.AddCommand(newPlayerDeleteCmd())
	cmd.AddCommand(newPlayerStatsCmd())

	return cmd
}

// playerBody is the JSON body shared by create and update
type playerBody struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

func playerPath(id string) string {
	return "/api/players/" + url.PathEscape(id)
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players alphabetically",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Player

			if err := client.Get(cmd.Context(), "/api/players", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Player

			if err := client.Get(cmd.Context(), playerPath(args[0]), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerCreateCmd() *cobra.Command {
	var body playerBody

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a player to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Player

			if err := client.Post(cmd.Context(), "/api/players", body, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&body.Name, "name", "", "Player name (required)")
	cmd.Flags().Float64Var(&body.Rating, "rating", 0, "Rating from 0 to 5 in steps of 0.5 (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func newPlayerUpdateCmd() *cobra.Command {
	var body playerBody

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a player's name and rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Player

			if err := client.Put(cmd.Context(), playerPath(args[0]), body, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&body.Name, "name", "", "Player name (required)")
	cmd.Flags().Float64Var(&body.Rating, "rating", 0, "Rating from 0 to 5 in steps of 0.5 (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.DeletePlayerResponse

			if err := client.Delete(cmd.Context(), playerPath(args[0]), &result); err != nil {
				return err
			}

			out := newOutput(cmd)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}
			out.PrintMessage(fmt.Sprintf("%s: %s (%s)", result.Message, result.Player.Name, result.Player.ID))
			return nil
		},
	}
}

func newPlayerStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show roster size, rating distribution and average",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.Stats

			if err := client.Get(cmd.Context(), "/api/players/stats", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}
