package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gluckgaming/connect4-backend/internal/entity"
	"github.com/gluckgaming/connect4-backend/internal/pkg"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidGameID = errors.New("invalid game id")
)

// GameRepository owns game documents and their identifiers. Identifiers are
// 24-character hex tokens minted on create; lookups with any other shape are
// rejected with ErrInvalidGameID.
type GameRepository interface {
	Create(ctx context.Context, firstPlayer, secondPlayer, sessionID string) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetByPlayers(ctx context.Context, firstPlayer, secondPlayer string) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, game *entity.Game) error
}

type redisGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &redisGame{
		client: client,
	}
}

func (that *redisGame) Create(ctx context.Context, firstPlayer, secondPlayer, sessionID string) (string, error) {
	game := entity.NewGame(firstPlayer, secondPlayer, sessionID)
	game.ID = pkg.NewGameID()

	if err := that.set(ctx, game); err != nil {
		return "", err
	}

	err := that.client.Set(ctx, playersKey(firstPlayer, secondPlayer), game.ID, 0).Err()
	if err != nil {
		return "", fmt.Errorf("failed to set players index: %w", err)
	}

	return game.ID, nil
}

func (that *redisGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	if !pkg.IsGameID(id) {
		return nil, ErrInvalidGameID
	}

	response, err := that.client.Get(ctx, gameKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func (that *redisGame) GetByPlayers(ctx context.Context, firstPlayer, secondPlayer string) (*entity.Game, error) {
	id, err := that.client.Get(ctx, playersKey(firstPlayer, secondPlayer)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by players: %w", err)
	}

	return that.GetByID(ctx, id)
}

func (that *redisGame) Update(ctx context.Context, game *entity.Game) error {
	return that.set(ctx, game)
}

func (that *redisGame) Delete(ctx context.Context, game *entity.Game) error {
	err := that.client.Del(ctx, gameKey(game.ID), playersKey(game.FirstPlayer, game.SecondPlayer)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *redisGame) set(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(game.ID), gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func gameKey(id string) string {
	return "game:" + id
}

func playersKey(firstPlayer, secondPlayer string) string {
	return "game:players:" + firstPlayer + "|" + secondPlayer
}
