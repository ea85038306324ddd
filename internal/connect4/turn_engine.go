package connect4

import (
	"fmt"

	"github.com/gluckgaming/connect4-backend/internal/apperror"
	"github.com/gluckgaming/connect4-backend/internal/entity"
)

// PlayTurn validates a single turn against the game and, if legal, mutates
// the grid in place. The checks run in a fixed order and the first failing
// one wins; a rejected turn never touches the game.
//
// The engine does not detect a winner or a draw. The caller reports those
// outcomes through the complete and draw lifecycle operations.
func PlayTurn(game *entity.Game, playerName, sessionID string, row, column int) error {
	if !game.State.IsPlayable() {
		return apperror.InvalidGameState(fmt.Sprintf("game is not in a playable state, current game state: %s", game.State))
	}

	if sessionID != game.SessionID {
		return apperror.Validation("invalid session id provided")
	}

	if err := validatePlayerTurn(game, playerName); err != nil {
		return err
	}

	if err := validateCellToFill(game, row, column); err != nil {
		return err
	}

	applyTurn(game, playerName, row, column)

	return nil
}

// validatePlayerTurn enforces the first-turn rule before the consecutive-turn
// rule, so the opening move of a fresh or freshly resumed game is never
// rejected as a consecutive turn.
func validatePlayerTurn(game *entity.Game, playerName string) error {
	if err := validateFirstTurn(game, playerName); err != nil {
		return err
	}

	if game.State != entity.StateNew && game.HasTurnBeenPlayed() && playerName == game.LastTurnPlayedBy {
		return apperror.ConsecutiveTurnsNotAllowed("the same player is not allowed to play consecutive turns")
	}

	return nil
}

// validateFirstTurn requires the first player to open the game. The rule also
// applies to a game suspended and resumed before any turn was played: it is
// IN_PROGRESS but no turn has been recorded.
func validateFirstTurn(game *entity.Game, playerName string) error {
	if game.State == entity.StateNew && playerName != game.FirstPlayer {
		return apperror.IncorrectGameStart("first player should start the game")
	}

	if game.State == entity.StateInProgress && !game.HasTurnBeenPlayed() && playerName != game.FirstPlayer {
		return apperror.IncorrectGameStart("first player should start the game")
	}

	return nil
}

func validateCellToFill(game *entity.Game, row, column int) error {
	if !game.Grid.InBounds(row, column) {
		return apperror.InvalidGridCellToFill(fmt.Sprintf("grid cell [%d,%d] is out of bounds", row, column))
	}

	if game.Grid.IsCellFilled(row, column) {
		return apperror.InvalidGridCellToFill("cannot fill the grid cell, it is already filled")
	}

	if !game.Grid.IsCellSupported(row, column) {
		return apperror.InvalidGridCellToFill("cannot fill the grid cell, the cell below it is still unfilled")
	}

	return nil
}

// applyTurn records the turn and promotes a NEW game to IN_PROGRESS. A player
// name matching neither registered player still consumes the turn without
// marking a cell; legacy behavior kept for compatibility with existing
// clients.
func applyTurn(game *entity.Game, playerName string, row, column int) {
	game.LastTurnPlayedBy = playerName

	if game.State == entity.StateNew {
		game.State = entity.StateInProgress
	}

	switch playerName {
	case game.FirstPlayer:
		game.Grid[row][column] = entity.CellPlayerOne
	case game.SecondPlayer:
		game.Grid[row][column] = entity.CellPlayerTwo
	}
}
