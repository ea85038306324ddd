package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gluckgaming/connect4-backend/internal/apperror"
	"github.com/gluckgaming/connect4-backend/internal/connect4"
	"github.com/gluckgaming/connect4-backend/internal/entity"
	"github.com/gluckgaming/connect4-backend/internal/pkg"
	"github.com/gluckgaming/connect4-backend/internal/repository"
)

type gameRepo interface {
	Create(ctx context.Context, firstPlayer, secondPlayer, sessionID string) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, game *entity.Game) error
}

type requestValidator interface {
	ValidateCreateGame(firstPlayer, secondPlayer string) error
	ValidateGameID(gameID string) error
	ValidatePlayTurn(request PlayTurnRequest) error
}

// PlayTurnRequest carries one turn against a running game session.
type PlayTurnRequest struct {
	GameID     string
	SessionID  string
	PlayerName string
	Row        int
	Column     int
}

// CreatedGame is the result of CreateGame.
type CreatedGame struct {
	GameID    string
	SessionID string
	State     entity.State
}

// GameService orchestrates the rules engine per operation: shape validation,
// load, component logic, persist. Operations against the same game id are
// serialized through a per-id lock, so two concurrent turns can never both
// apply against the same stale read.
type GameService struct {
	logger    *slog.Logger
	validator requestValidator
	games     gameRepo
	locks     *gameLocks
}

func NewGameService(logger *slog.Logger, validator requestValidator, games gameRepo) *GameService {
	return &GameService{
		logger:    logger.With("component", "game_service"),
		validator: validator,
		games:     games,
		locks:     newGameLocks(),
	}
}

func (that *GameService) CreateGame(ctx context.Context, firstPlayer, secondPlayer string) (*CreatedGame, error) {
	log := that.logger.With("method", "CreateGame")

	if err := that.validator.ValidateCreateGame(firstPlayer, secondPlayer); err != nil {
		return nil, err
	}

	sessionID := pkg.NewSessionID()

	gameID, err := that.games.Create(ctx, firstPlayer, secondPlayer, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info("created game", "gameID", gameID)

	return &CreatedGame{
		GameID:    gameID,
		SessionID: sessionID,
		State:     entity.StateNew,
	}, nil
}

func (that *GameService) GetGameData(ctx context.Context, gameID string) (*entity.Game, error) {
	if err := that.validator.ValidateGameID(gameID); err != nil {
		return nil, err
	}

	return that.fetchGame(ctx, gameID)
}

// PlayTurn validates and applies a single turn, returning the name of the
// player who moved.
func (that *GameService) PlayTurn(ctx context.Context, request PlayTurnRequest) (string, error) {
	log := that.logger.With("method", "PlayTurn", "gameID", request.GameID)

	if err := that.validator.ValidatePlayTurn(request); err != nil {
		return "", err
	}

	release := that.locks.acquire(request.GameID)
	defer release()

	game, err := that.fetchGame(ctx, request.GameID)
	if err != nil {
		return "", err
	}

	if err = connect4.PlayTurn(game, request.PlayerName, request.SessionID, request.Row, request.Column); err != nil {
		return "", err
	}

	if err = that.games.Update(ctx, game); err != nil {
		return "", fmt.Errorf("failed to update game: %w", err)
	}

	log.Info("grid cell filled", "row", request.Row, "column", request.Column, "player", request.PlayerName)

	return request.PlayerName, nil
}

func (that *GameService) SuspendGame(ctx context.Context, gameID string) error {
	return that.closeSession(ctx, gameID, entity.StateSuspended, "suspend")
}

// ResumeGame issues a fresh session and moves the game back to IN_PROGRESS.
// On an illegal transition the new session is discarded with the unpersisted
// game.
func (that *GameService) ResumeGame(ctx context.Context, gameID string) (*entity.Game, error) {
	log := that.logger.With("method", "ResumeGame", "gameID", gameID)

	if err := that.validator.ValidateGameID(gameID); err != nil {
		return nil, err
	}

	release := that.locks.acquire(gameID)
	defer release()

	game, err := that.fetchGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game.SessionID = pkg.NewSessionID()

	if err = that.transition(ctx, game, entity.StateInProgress); err != nil {
		return nil, err
	}

	log.Info("resumed game")

	return game, nil
}

func (that *GameService) CompleteGame(ctx context.Context, gameID string) error {
	return that.closeSession(ctx, gameID, entity.StateCompleted, "complete")
}

func (that *GameService) DrawGame(ctx context.Context, gameID string) error {
	return that.closeSession(ctx, gameID, entity.StateDrawn, "draw")
}

func (that *GameService) AbandonGame(ctx context.Context, gameID string) error {
	return that.closeSession(ctx, gameID, entity.StateAbandoned, "abandon")
}

// DeleteGame removes a game that has reached a terminal state.
func (that *GameService) DeleteGame(ctx context.Context, gameID string) error {
	log := that.logger.With("method", "DeleteGame", "gameID", gameID)

	if err := that.validator.ValidateGameID(gameID); err != nil {
		return err
	}

	release := that.locks.acquire(gameID)
	defer release()

	game, err := that.fetchGame(ctx, gameID)
	if err != nil {
		return err
	}

	if !game.State.IsTerminal() {
		return apperror.GameDeletionNotAllowed(
			"cannot delete the game, it must be in COMPLETED, DRAWN or ABANDONED state to be deleted")
	}

	if err = that.games.Delete(ctx, game); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	log.Info("deleted game")

	return nil
}

// closeSession invalidates the current session and requests the state
// transition. Nothing is persisted when the transition is illegal.
func (that *GameService) closeSession(ctx context.Context, gameID string, target entity.State, action string) error {
	log := that.logger.With("method", action, "gameID", gameID)

	if err := that.validator.ValidateGameID(gameID); err != nil {
		return err
	}

	release := that.locks.acquire(gameID)
	defer release()

	game, err := that.fetchGame(ctx, gameID)
	if err != nil {
		return err
	}

	game.InvalidateSession()

	if err = that.transition(ctx, game, target); err != nil {
		return err
	}

	log.Info("game state updated", "state", target)

	return nil
}

func (that *GameService) transition(ctx context.Context, game *entity.Game, target entity.State) error {
	if !game.State.CanTransitionTo(target) {
		return apperror.InvalidGameStateTransition(
			fmt.Sprintf("invalid state transition from %s to %s", game.State, target))
	}

	game.State = target

	if err := that.games.Update(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameService) fetchGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.games.GetByID(ctx, gameID)

	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return nil, apperror.GameNotFound("game with the given id does not exist")
	case errors.Is(err, repository.ErrInvalidGameID):
		return nil, apperror.Validation("invalid game id provided")
	case err != nil:
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}
