package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gluckgaming/connect4-backend/internal/entity"
	"github.com/gluckgaming/connect4-backend/internal/pkg"
)

// sqliteGame is the SQLite-backed GameRepository, selected through the
// storage backend config. The grid is stored as a JSON matrix of small
// integers, same representation the redis backend uses.
type sqliteGame struct {
	db *sql.DB
}

func NewSQLiteGameRepository(ctx context.Context, db *sql.DB) (GameRepository, error) {
	query := `CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		first_player TEXT NOT NULL,
		second_player TEXT NOT NULL,
		state TEXT NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		last_turn_played_by TEXT NOT NULL DEFAULT '',
		grid TEXT NOT NULL
	)`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return nil, fmt.Errorf("can't create games table: %w", err)
	}

	return &sqliteGame{db: db}, nil
}

func (that *sqliteGame) Create(ctx context.Context, firstPlayer, secondPlayer, sessionID string) (string, error) {
	game := entity.NewGame(firstPlayer, secondPlayer, sessionID)
	game.ID = pkg.NewGameID()

	gridJSON, err := json.Marshal(game.Grid)
	if err != nil {
		return "", fmt.Errorf("could not marshal grid: %w", err)
	}

	query := `INSERT INTO games (id, first_player, second_player, state, session_id, last_turn_played_by, grid)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = that.db.ExecContext(ctx, query,
		game.ID, game.FirstPlayer, game.SecondPlayer, game.State.String(), game.SessionID, game.LastTurnPlayedBy, string(gridJSON))
	if err != nil {
		return "", fmt.Errorf("failed to insert game: %w", err)
	}

	return game.ID, nil
}

func (that *sqliteGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	if !pkg.IsGameID(id) {
		return nil, ErrInvalidGameID
	}

	query := `SELECT id, first_player, second_player, state, session_id, last_turn_played_by, grid
		FROM games WHERE id = ?`

	return that.scanGame(that.db.QueryRowContext(ctx, query, id))
}

func (that *sqliteGame) GetByPlayers(ctx context.Context, firstPlayer, secondPlayer string) (*entity.Game, error) {
	query := `SELECT id, first_player, second_player, state, session_id, last_turn_played_by, grid
		FROM games WHERE first_player = ? AND second_player = ? LIMIT 1`

	return that.scanGame(that.db.QueryRowContext(ctx, query, firstPlayer, secondPlayer))
}

func (that *sqliteGame) Update(ctx context.Context, game *entity.Game) error {
	gridJSON, err := json.Marshal(game.Grid)
	if err != nil {
		return fmt.Errorf("could not marshal grid: %w", err)
	}

	query := `UPDATE games SET state = ?, session_id = ?, last_turn_played_by = ?, grid = ? WHERE id = ?`

	result, err := that.db.ExecContext(ctx, query,
		game.State.String(), game.SessionID, game.LastTurnPlayedBy, string(gridJSON), game.ID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrGameNotFound
	}

	return nil
}

func (that *sqliteGame) Delete(ctx context.Context, game *entity.Game) error {
	if _, err := that.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, game.ID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *sqliteGame) scanGame(row *sql.Row) (*entity.Game, error) {
	var game entity.Game
	var state, gridJSON string

	err := row.Scan(&game.ID, &game.FirstPlayer, &game.SecondPlayer, &state, &game.SessionID, &game.LastTurnPlayedBy, &gridJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}

	game.State = entity.State(state)
	if err = json.Unmarshal([]byte(gridJSON), &game.Grid); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grid: %w", err)
	}

	return &game, nil
}
