package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gluckgaming/connect4-backend/internal/apperror"
	"github.com/gluckgaming/connect4-backend/internal/entity"
	"github.com/gluckgaming/connect4-backend/internal/service"
)

// stubGameService returns canned results per operation so the tests can pin
// the status code and error envelope mapping.
type stubGameService struct {
	created     *service.CreatedGame
	game        *entity.Game
	playerMoved string
	err         error
}

func (that *stubGameService) CreateGame(context.Context, string, string) (*service.CreatedGame, error) {
	return that.created, that.err
}

func (that *stubGameService) GetGameData(context.Context, string) (*entity.Game, error) {
	return that.game, that.err
}

func (that *stubGameService) PlayTurn(context.Context, service.PlayTurnRequest) (string, error) {
	return that.playerMoved, that.err
}

func (that *stubGameService) SuspendGame(context.Context, string) error  { return that.err }
func (that *stubGameService) CompleteGame(context.Context, string) error { return that.err }
func (that *stubGameService) DrawGame(context.Context, string) error     { return that.err }
func (that *stubGameService) AbandonGame(context.Context, string) error  { return that.err }
func (that *stubGameService) DeleteGame(context.Context, string) error   { return that.err }

func (that *stubGameService) ResumeGame(context.Context, string) (*entity.Game, error) {
	return that.game, that.err
}

func newTestServer(games gameService) *httptest.Server {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	server := New(logger, games)

	return httptest.NewServer(server.router)
}

func doRequest(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}

	req, err := http.NewRequest(method, url, &reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	require.NoError(t, resp.Body.Close())

	return errResp
}

func TestHandlers_CreateGame(t *testing.T) {
	t.Run("returns 201 with id, session and state", func(t *testing.T) {
		ts := newTestServer(&stubGameService{
			created: &service.CreatedGame{GameID: "0123456789abcdef01234567", SessionID: "session-1", State: entity.StateNew},
		})
		defer ts.Close()

		resp := doRequest(t, http.MethodPost, ts.URL+"/games/create", CreateGameRequest{
			FirstPlayerName: "alice", SecondPlayerName: "bob",
		})

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created CreateGameResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, "0123456789abcdef01234567", created.GameID)
		assert.Equal(t, "session-1", created.SessionID)
		assert.Equal(t, "NEW", created.State)
	})

	t.Run("maps a validation failure to 400", func(t *testing.T) {
		ts := newTestServer(&stubGameService{
			err: apperror.Validation("player names to create the game must not be empty"),
		})
		defer ts.Close()

		resp := doRequest(t, http.MethodPost, ts.URL+"/games/create", CreateGameRequest{})

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errResp := decodeError(t, resp)
		assert.Equal(t, int(apperror.CodeValidation), errResp.Code)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		ts := newTestServer(&stubGameService{})
		defer ts.Close()

		resp, err := http.Post(ts.URL+"/games/create", "application/json", bytes.NewBufferString("{not json"))
		require.NoError(t, err)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errResp := decodeError(t, resp)
		assert.Equal(t, int(apperror.CodeValidation), errResp.Code)
	})
}

func TestHandlers_GetGameData(t *testing.T) {
	t.Run("returns the full snapshot", func(t *testing.T) {
		game := entity.NewGame("alice", "bob", "session-1")
		game.ID = "0123456789abcdef01234567"
		game.State = entity.StateInProgress
		game.LastTurnPlayedBy = "alice"
		game.Grid[5][1] = entity.CellPlayerOne

		ts := newTestServer(&stubGameService{game: game})
		defer ts.Close()

		resp := doRequest(t, http.MethodGet, ts.URL+"/games/"+game.ID, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var data GameDataResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, game.ID, data.GameID)
		assert.Equal(t, "IN_PROGRESS", data.State)
		assert.Equal(t, "alice", data.LastTurnPlayedBy)
		assert.Equal(t, entity.CellPlayerOne, data.Grid[5][1])
	})

	t.Run("maps GameNotFound to 404", func(t *testing.T) {
		ts := newTestServer(&stubGameService{err: apperror.ErrGameNotFound})
		defer ts.Close()

		resp := doRequest(t, http.MethodGet, ts.URL+"/games/0123456789abcdef01234567", nil)

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		errResp := decodeError(t, resp)
		assert.Equal(t, int(apperror.CodeGameNotFound), errResp.Code)
	})
}

func TestHandlers_PlayTurn(t *testing.T) {
	t.Run("returns 202 with the player who moved", func(t *testing.T) {
		ts := newTestServer(&stubGameService{playerMoved: "alice"})
		defer ts.Close()

		resp := doRequest(t, http.MethodPut, ts.URL+"/games/play", PlayTurnRequest{
			GameID: "0123456789abcdef01234567", SessionID: "session-1", PlayerName: "alice",
			GridRowToFill: 5, GridColumnToFill: 1,
		})

		require.Equal(t, http.StatusAccepted, resp.StatusCode)

		var played PlayTurnResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&played))
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, "alice", played.PlayerName)
	})

	t.Run("maps turn failures to 400 with their code", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			err  *apperror.Error
		}{
			{"invalid game state", apperror.ErrInvalidGameState},
			{"incorrect game start", apperror.ErrIncorrectGameStart},
			{"consecutive turns", apperror.ErrConsecutiveTurnsNotAllowed},
			{"invalid grid cell", apperror.ErrInvalidGridCellToFill},
		} {
			t.Run(tc.name, func(t *testing.T) {
				ts := newTestServer(&stubGameService{err: tc.err})
				defer ts.Close()

				resp := doRequest(t, http.MethodPut, ts.URL+"/games/play", PlayTurnRequest{})

				require.Equal(t, http.StatusBadRequest, resp.StatusCode)
				errResp := decodeError(t, resp)
				assert.Equal(t, int(tc.err.Code), errResp.Code)
			})
		}
	})

	t.Run("carries validation details in the envelope", func(t *testing.T) {
		ts := newTestServer(&stubGameService{
			err: apperror.Validation("request failed validation checks",
				"session id is mandatory to play turn", "player name cannot be empty"),
		})
		defer ts.Close()

		resp := doRequest(t, http.MethodPut, ts.URL+"/games/play", PlayTurnRequest{})

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errResp := decodeError(t, resp)
		assert.Len(t, errResp.Details, 2)
	})
}

func TestHandlers_Lifecycle(t *testing.T) {
	t.Run("lifecycle actions return 202 on success", func(t *testing.T) {
		ts := newTestServer(&stubGameService{game: entity.NewGame("alice", "bob", "session-2")})
		defer ts.Close()

		id := "0123456789abcdef01234567"
		for _, tc := range []struct{ method, path string }{
			{http.MethodPut, "/games/suspend/" + id},
			{http.MethodPut, "/games/resume/" + id},
			{http.MethodPut, "/games/complete/" + id},
			{http.MethodPut, "/games/draw/" + id},
			{http.MethodPut, "/games/abandon/" + id},
			{http.MethodDelete, "/games/delete/" + id},
		} {
			resp := doRequest(t, tc.method, ts.URL+tc.path, nil)
			assert.Equalf(t, http.StatusAccepted, resp.StatusCode, "%s %s", tc.method, tc.path)
			require.NoError(t, resp.Body.Close())
		}
	})

	t.Run("maps an illegal transition to 400", func(t *testing.T) {
		ts := newTestServer(&stubGameService{err: apperror.ErrInvalidGameStateTransition})
		defer ts.Close()

		resp := doRequest(t, http.MethodPut, ts.URL+"/games/suspend/0123456789abcdef01234567", nil)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errResp := decodeError(t, resp)
		assert.Equal(t, int(apperror.CodeInvalidGameStateTransition), errResp.Code)
	})

	t.Run("maps a refused deletion to 400", func(t *testing.T) {
		ts := newTestServer(&stubGameService{err: apperror.ErrGameDeletionNotAllowed})
		defer ts.Close()

		resp := doRequest(t, http.MethodDelete, ts.URL+"/games/delete/0123456789abcdef01234567", nil)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errResp := decodeError(t, resp)
		assert.Equal(t, int(apperror.CodeGameDeletionNotAllowed), errResp.Code)
	})

	t.Run("maps an infrastructure failure to 500", func(t *testing.T) {
		ts := newTestServer(&stubGameService{err: errors.New("storage unavailable")})
		defer ts.Close()

		resp := doRequest(t, http.MethodPut, ts.URL+"/games/suspend/0123456789abcdef01234567", nil)

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		errResp := decodeError(t, resp)
		assert.Equal(t, int(apperror.CodeInternal), errResp.Code)
	})
}
