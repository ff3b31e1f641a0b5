// Package retrieval implements the guideline snippet index backing the
// agent's guideline_lookup tool, on Postgres full-text search.
package retrieval

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Retrieve returns the topK guideline chunks ranked by full-text relevance.
func (s *Store) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 3
	}

	rows, err := s.pool.Query(ctx, `
		SELECT chunk
		FROM guidelines
		WHERE tsv @@ plainto_tsquery('simple', $1)
		ORDER BY ts_rank(tsv, plainto_tsquery('simple', $1)) DESC
		LIMIT $2`,
		query, topK)
	if err != nil {
		return nil, fmt.Errorf("query guidelines: %w", err)
	}
	defer rows.Close()

	var snippets []string
	for rows.Next() {
		var chunk string
		if err := rows.Scan(&chunk); err != nil {
			return nil, fmt.Errorf("scan guideline: %w", err)
		}
		snippets = append(snippets, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return snippets, nil
}

// Add stores one guideline chunk in the index.
func (s *Store) Add(ctx context.Context, title, chunk string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO guidelines (id, title, chunk, tsv)
		VALUES ($1, $2, $3, to_tsvector('simple', $2 || ' ' || $3))`,
		id, title, chunk)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert guideline: %w", err)
	}
	return id, nil
}

// Count reports how many chunks the index holds.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM guidelines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count guidelines: %w", err)
	}
	return n, nil
}
