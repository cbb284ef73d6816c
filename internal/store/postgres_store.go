package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habit-service/internal/model"
)

// PostgresStore satisfies the same full-replace contract against a habits
// table. Save rewrites the table inside one transaction so a failed write
// never leaves a partial collection behind.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// EnsureSchema creates the habits table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS habits (
            position        INT PRIMARY KEY,
            id              TEXT NOT NULL UNIQUE,
            name            TEXT NOT NULL,
            frequency       TEXT NOT NULL,
            category        TEXT NOT NULL,
            completed_dates TEXT[] NOT NULL DEFAULT '{}',
            created_at      TIMESTAMPTZ NOT NULL
        )
    `
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure habits schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]model.Habit, error) {
	query := `
        SELECT id, name, frequency, category, completed_dates, created_at
        FROM habits
        ORDER BY position
    `
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		s.logger.Error("Failed to load habits", zap.Error(err))
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		var h model.Habit
		if err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.Frequency,
			&h.Category,
			&h.CompletedDates,
			&h.CreatedAt,
		); err != nil {
			s.logger.Error("Failed to scan habit", zap.Error(err))
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	s.logger.Debug("Loaded habits from postgres", zap.Int("count", len(habits)))
	return habits, nil
}

func (s *PostgresStore) Save(ctx context.Context, habits []model.Habit) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM habits`); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	query := `
        INSERT INTO habits (position, id, name, frequency, category, completed_dates, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	for i, h := range habits {
		dates := h.CompletedDates
		if dates == nil {
			dates = []string{}
		}
		if _, err := tx.Exec(ctx, query,
			i,
			h.ID,
			h.Name,
			h.Frequency,
			h.Category,
			dates,
			h.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error("Failed to commit habit save", zap.Error(err))
		return fmt.Errorf("failed to commit habit save: %w", err)
	}
	return nil
}
