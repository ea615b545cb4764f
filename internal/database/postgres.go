package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens a pooled PostgreSQL handle and creates the survey
// tables if they don't exist.
func ConnectPostgres(ctx context.Context, postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	if err := InitPostgresTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS survey_responses (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL CHECK (name <> ''),
			email TEXT NOT NULL CHECK (position('@' in email) > 0),
			prior_experience VARCHAR(16) NOT NULL
				CHECK (prior_experience IN ('none', 'basic', 'some', 'regular', 'advanced')),
			llm_chatgpt BOOLEAN NOT NULL DEFAULT FALSE,
			llm_claudeai BOOLEAN NOT NULL DEFAULT FALSE,
			llm_bard BOOLEAN NOT NULL DEFAULT FALSE,
			llm_copilot BOOLEAN NOT NULL DEFAULT FALSE,
			llm_other TEXT NOT NULL DEFAULT '',
			concerns TEXT[] NOT NULL DEFAULT '{}',
			learning_goals TEXT[] NOT NULL DEFAULT '{}',
			use_cases TEXT[] NOT NULL DEFAULT '{}',
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_survey_responses_submitted_at
			ON survey_responses (submitted_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
