package rest

import "github.com/gluckgaming/connect4-backend/internal/entity"

type CreateGameRequest struct {
	FirstPlayerName  string `json:"first_player_name"`
	SecondPlayerName string `json:"second_player_name"`
}

type CreateGameResponse struct {
	GameID    string `json:"game_id"`
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

type PlayTurnRequest struct {
	GameID           string `json:"game_id"`
	SessionID        string `json:"session_id"`
	PlayerName       string `json:"player_name"`
	GridRowToFill    int    `json:"grid_row_to_fill"`
	GridColumnToFill int    `json:"grid_column_to_fill"`
}

type PlayTurnResponse struct {
	PlayerName string `json:"player_name"`
}

type GameDataResponse struct {
	GameID           string      `json:"game_id"`
	SessionID        string      `json:"session_id,omitempty"`
	FirstPlayer      string      `json:"first_player"`
	SecondPlayer     string      `json:"second_player"`
	State            string      `json:"state"`
	LastTurnPlayedBy string      `json:"last_turn_played_by,omitempty"`
	Grid             entity.Grid `json:"grid"`
}

type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func newGameDataResponse(game *entity.Game) *GameDataResponse {
	return &GameDataResponse{
		GameID:           game.ID,
		SessionID:        game.SessionID,
		FirstPlayer:      game.FirstPlayer,
		SecondPlayer:     game.SecondPlayer,
		State:            game.State.String(),
		LastTurnPlayedBy: game.LastTurnPlayedBy,
		Grid:             game.Grid,
	}
}
