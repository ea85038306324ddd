package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gluckgaming/connect4-backend/internal/apperror"
	"github.com/gluckgaming/connect4-backend/internal/entity"
	"github.com/gluckgaming/connect4-backend/internal/service"
)

type gameService interface {
	CreateGame(ctx context.Context, firstPlayer, secondPlayer string) (*service.CreatedGame, error)
	GetGameData(ctx context.Context, gameID string) (*entity.Game, error)
	PlayTurn(ctx context.Context, request service.PlayTurnRequest) (string, error)
	SuspendGame(ctx context.Context, gameID string) error
	ResumeGame(ctx context.Context, gameID string) (*entity.Game, error)
	CompleteGame(ctx context.Context, gameID string) error
	DrawGame(ctx context.Context, gameID string) error
	AbandonGame(ctx context.Context, gameID string) error
	DeleteGame(ctx context.Context, gameID string) error
}

type handlers struct {
	logger *slog.Logger
	games  gameService
}

func newHandlers(logger *slog.Logger, games gameService) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var request CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.writeError(w, apperror.Validation("invalid request body"))
		return
	}

	created, err := that.games.CreateGame(r.Context(), request.FirstPlayerName, request.SecondPlayerName)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, &CreateGameResponse{
		GameID:    created.GameID,
		SessionID: created.SessionID,
		State:     created.State.String(),
	})
}

func (that *handlers) getGameData(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGameData(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameDataResponse(game))
}

func (that *handlers) playTurn(w http.ResponseWriter, r *http.Request) {
	var request PlayTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.writeError(w, apperror.Validation("invalid request body"))
		return
	}

	playerName, err := that.games.PlayTurn(r.Context(), service.PlayTurnRequest{
		GameID:     request.GameID,
		SessionID:  request.SessionID,
		PlayerName: request.PlayerName,
		Row:        request.GridRowToFill,
		Column:     request.GridColumnToFill,
	})
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusAccepted, &PlayTurnResponse{PlayerName: playerName})
}

func (that *handlers) suspendGame(w http.ResponseWriter, r *http.Request) {
	that.lifecycleAction(w, r, that.games.SuspendGame)
}

func (that *handlers) resumeGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.ResumeGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusAccepted, newGameDataResponse(game))
}

func (that *handlers) completeGame(w http.ResponseWriter, r *http.Request) {
	that.lifecycleAction(w, r, that.games.CompleteGame)
}

func (that *handlers) drawGame(w http.ResponseWriter, r *http.Request) {
	that.lifecycleAction(w, r, that.games.DrawGame)
}

func (that *handlers) abandonGame(w http.ResponseWriter, r *http.Request) {
	that.lifecycleAction(w, r, that.games.AbandonGame)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	that.lifecycleAction(w, r, that.games.DeleteGame)
}

func (that *handlers) lifecycleAction(w http.ResponseWriter, r *http.Request, action func(context.Context, string) error) {
	if err := action(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// writeError maps a domain failure to its HTTP status: GameNotFound is 404,
// the rest of the taxonomy is 400, anything outside it is a 500 with the
// generic internal code.
func (that *handlers) writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		that.logger.Error("internal failure", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, &ErrorResponse{
			Code:    int(apperror.CodeInternal),
			Message: "internal system error",
		})
		return
	}

	status := http.StatusBadRequest
	if appErr.Code == apperror.CodeGameNotFound {
		status = http.StatusNotFound
	}

	that.writeJSON(w, status, &ErrorResponse{
		Code:    int(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
