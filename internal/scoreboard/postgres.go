package scoreboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS fighter_scores (
    fighter TEXT PRIMARY KEY,
    wins    INTEGER NOT NULL DEFAULT 0
)`

// PostgresStore persists scores in Postgres via a pgx connection pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore connects to the database, verifies the connection
// and ensures the score table exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure score table: %w", err)
	}
	logger.Info("score store connected",
		zap.Int32("total_conns", pool.Stat().TotalConns()),
	)
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Wins(ctx context.Context, fighter string) (int, error) {
	var wins int
	err := s.pool.QueryRow(ctx,
		`SELECT wins FROM fighter_scores WHERE fighter = $1`, fighter,
	).Scan(&wins)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query wins: %w", err)
	}
	return wins, nil
}

func (s *PostgresStore) SetWins(ctx context.Context, fighter string, wins int) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO fighter_scores (fighter, wins) VALUES ($1, $2)
		 ON CONFLICT (fighter) DO UPDATE SET wins = EXCLUDED.wins`,
		fighter, wins,
	)
	if err != nil {
		return fmt.Errorf("failed to set wins: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecordWin(ctx context.Context, fighter string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO fighter_scores (fighter, wins) VALUES ($1, 1)
		 ON CONFLICT (fighter) DO UPDATE SET wins = fighter_scores.wins + 1`,
		fighter,
	)
	if err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}
	return nil
}

func (s *PostgresStore) Reset(ctx context.Context, fighter string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM fighter_scores WHERE fighter = $1`, fighter,
	)
	if err != nil {
		return fmt.Errorf("failed to reset score: %w", err)
	}
	return nil
}
