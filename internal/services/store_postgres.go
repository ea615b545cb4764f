package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore stores responses in the survey_responses table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, r *models.SurveyResponse) error {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO survey_responses (
			id, name, email, prior_experience,
			llm_chatgpt, llm_claudeai, llm_bard, llm_copilot, llm_other,
			concerns, learning_goals, use_cases, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, id, r.Name, r.Email, string(r.PriorExperience),
		r.LLMExperience.ChatGPT, r.LLMExperience.ClaudeAI, r.LLMExperience.Bard, r.LLMExperience.Copilot, r.LLMExperience.Other,
		pq.Array(r.Concerns), pq.Array(r.LearningGoals), pq.Array(r.UseCases), r.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}
	r.ID = id.String()
	return nil
}

func (s *PostgresStore) List(ctx context.Context, rng models.DateRange) ([]models.SurveyResponse, error) {
	var (
		where []string
		args  []interface{}
	)
	if rng.Start != nil {
		args = append(args, rng.Start.UTC())
		where = append(where, fmt.Sprintf("submitted_at >= $%d", len(args)))
	}
	if rng.End != nil {
		args = append(args, rng.End.UTC())
		where = append(where, fmt.Sprintf("submitted_at <= $%d", len(args)))
	}

	query := `
		SELECT id, name, email, prior_experience,
			llm_chatgpt, llm_claudeai, llm_bard, llm_copilot, llm_other,
			concerns, learning_goals, use_cases, submitted_at
		FROM survey_responses`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY submitted_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query surveys: %w", err)
	}
	defer rows.Close()

	out := make([]models.SurveyResponse, 0)
	for rows.Next() {
		var (
			r           models.SurveyResponse
			experience  string
			submittedAt time.Time
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &experience,
			&r.LLMExperience.ChatGPT, &r.LLMExperience.ClaudeAI, &r.LLMExperience.Bard, &r.LLMExperience.Copilot, &r.LLMExperience.Other,
			pq.Array(&r.Concerns), pq.Array(&r.LearningGoals), pq.Array(&r.UseCases), &submittedAt); err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		r.PriorExperience = models.ExperienceLevel(experience)
		r.SubmittedAt = submittedAt.UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate surveys: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Stats(ctx context.Context) (*models.SurveyStats, error) {
	stats := &models.SurveyStats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE llm_chatgpt),
			COUNT(*) FILTER (WHERE llm_claudeai),
			COUNT(*) FILTER (WHERE llm_bard),
			COUNT(*) FILTER (WHERE llm_copilot)
		FROM survey_responses
	`).Scan(&stats.TotalResponses,
		&stats.LLMUsage.ChatGPT, &stats.LLMUsage.ClaudeAI, &stats.LLMUsage.Bard, &stats.LLMUsage.Copilot)
	if err != nil {
		return nil, fmt.Errorf("count surveys: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT prior_experience, COUNT(*)
		FROM survey_responses
		GROUP BY prior_experience
	`)
	if err != nil {
		return nil, fmt.Errorf("group experience levels: %w", err)
	}
	defer rows.Close()

	stats.ExperienceLevels = make([]models.ExperienceCount, 0, len(models.ExperienceLevels))
	for rows.Next() {
		var (
			level string
			count int64
		)
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("scan experience level: %w", err)
		}
		stats.ExperienceLevels = append(stats.ExperienceLevels, models.ExperienceCount{
			Level: models.ExperienceLevel(level),
			Count: count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experience levels: %w", err)
	}
	sortExperienceCounts(stats.ExperienceLevels)
	return stats, nil
}
