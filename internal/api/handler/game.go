package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/arenafc/internal/api/request"
	"github.com/mcoot/arenafc/internal/api/response"
	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameService *game.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *game.Service) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// Create handles POST /api/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeBody(w, r, &req); err != nil {
		if isRosterTypeError(err) {
			WriteError(w, model.ErrInvalidTeams)
			return
		}
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id, err := h.gameService.Create(r.Context(), model.NewGame{
		Team1Players: req.Team1Players,
		Team2Players: req.Team2Players,
		Team1Score:   req.Team1Score,
		Team2Score:   req.Team2Score,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{
		ID:      string(id),
		Message: "Game saved",
	})
}

// List handles GET /api/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games := h.gameService.List(r.Context())
	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// isRosterTypeError reports whether a roster field held something other than an array of strings
func isRosterTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return false
	}
	return strings.HasPrefix(typeErr.Field, "team1Players") || strings.HasPrefix(typeErr.Field, "team2Players")
}
