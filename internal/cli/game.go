package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/arenafc/internal/api/request"
	"github.com/mcoot/arenafc/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameCreateCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded games, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Game

			if err := client.Get(cmd.Context(), "/api/games", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameCreateCmd() *cobra.Command {
	req := request.CreateGameRequest{
		Team1Players: []string{},
		Team2Players: []string{},
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a completed game",
		Example: `  arenafc game create --team1 p1,p2 --team2 p3,p4 --score1 3 --score2 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.CreateGameResponse

			if err := client.Post(cmd.Context(), "/api/games", req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&req.Team1Players, "team1", req.Team1Players, "Player ids on team 1 (comma separated)")
	cmd.Flags().StringSliceVar(&req.Team2Players, "team2", req.Team2Players, "Player ids on team 2 (comma separated)")
	cmd.Flags().IntVar(&req.Team1Score, "score1", 0, "Team 1 score")
	cmd.Flags().IntVar(&req.Team2Score, "score2", 0, "Team 2 score")

	return cmd
}
