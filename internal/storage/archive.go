package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scythe504/skribblr-party/internal"
	"github.com/scythe504/skribblr-party/internal/storage/migrations"
)

var ErrNoResults = errors.New("no game results")

// Archive appends finished games to Postgres. Nothing is ever read back into a live room.
type Archive struct {
	pool *pgxpool.Pool
}

// NewArchive migrates the schema and opens a connection pool.
func NewArchive(ctx context.Context, connString string) (*Archive, error) {
	if err := migrations.Migrate(connString); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Archive{pool: pool}, nil
}

func (a *Archive) SaveGame(ctx context.Context, result internal.GameResult) error {
	standings, err := json.Marshal(result.Standings)
	if err != nil {
		return fmt.Errorf("encode standings: %w", err)
	}
	endedAt := result.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	query := `INSERT INTO game_results
		(room_id, difficulty, rounds, winner_id, winner_name, winner_score, standings, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = a.pool.Exec(ctx, query,
		result.RoomId,
		string(result.Difficulty),
		result.Rounds,
		result.Winner.Id,
		result.Winner.Name,
		result.Winner.Score,
		standings,
		endedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game result: %w", err)
	}
	return nil
}

// LatestGame returns the most recently archived result for roomId.
func (a *Archive) LatestGame(ctx context.Context, roomId string) (internal.GameResult, error) {
	var (
		res       internal.GameResult
		diff      string
		standings []byte
	)
	query := `SELECT room_id, difficulty, rounds, winner_id, winner_name, winner_score, standings, ended_at
		FROM game_results WHERE room_id = $1 ORDER BY ended_at DESC, id DESC LIMIT 1`
	err := a.pool.QueryRow(ctx, query, roomId).Scan(
		&res.RoomId,
		&diff,
		&res.Rounds,
		&res.Winner.Id,
		&res.Winner.Name,
		&res.Winner.Score,
		&standings,
		&res.EndedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return res, ErrNoResults
		}
		return res, fmt.Errorf("query game result: %w", err)
	}
	res.Difficulty = internal.WordDifficulty(diff)
	if err := json.Unmarshal(standings, &res.Standings); err != nil {
		return res, fmt.Errorf("decode standings: %w", err)
	}
	return res, nil
}

func (a *Archive) Close() {
	a.pool.Close()
}
