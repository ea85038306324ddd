package service

import "github.com/gluckgaming/connect4-backend/internal/apperror"

// Validator performs request-shape checks only: presence and emptiness.
// Identifier format is the repository's concern.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (that *Validator) ValidateCreateGame(firstPlayer, secondPlayer string) error {
	if firstPlayer == "" || secondPlayer == "" {
		return apperror.Validation("player names to create the game must not be empty")
	}

	return nil
}

func (that *Validator) ValidateGameID(gameID string) error {
	if gameID == "" {
		return apperror.Validation("game id is mandatory, cannot be empty")
	}

	return nil
}

// ValidatePlayTurn collects every applicable shape error into one validation
// failure instead of stopping at the first.
func (that *Validator) ValidatePlayTurn(request PlayTurnRequest) error {
	var errs []string

	if request.GameID == "" {
		errs = append(errs, "game id is mandatory, cannot be empty")
	}

	if request.SessionID == "" {
		errs = append(errs, "session id is mandatory to play turn")
	}

	if request.PlayerName == "" {
		errs = append(errs, "player name cannot be empty")
	}

	if request.Row < 0 || request.Column < 0 {
		errs = append(errs, "invalid grid cell coordinates provided to fill")
	}

	if len(errs) > 0 {
		return apperror.Validation("request failed validation checks", errs...)
	}

	return nil
}
