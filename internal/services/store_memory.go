package services

import (
	"context"
	"sort"
	"sync"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/google/uuid"
)

// MemoryStore keeps responses in process memory. It backs the "memory" store
// driver for local development and the handler tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.SurveyResponse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(ctx context.Context, r *models.SurveyResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.ID = uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, cloneResponse(*r))
	return nil
}

func (s *MemoryStore) List(ctx context.Context, rng models.DateRange) ([]models.SurveyResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]models.SurveyResponse, 0, len(s.records))
	for _, r := range s.records {
		if rng.Contains(r.SubmittedAt) {
			out = append(out, cloneResponse(r))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (s *MemoryStore) Stats(ctx context.Context) (*models.SurveyStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.SurveyStats{TotalResponses: int64(len(s.records))}
	levels := make(map[models.ExperienceLevel]int64)
	for _, r := range s.records {
		levels[r.PriorExperience]++
		if r.LLMExperience.ChatGPT {
			stats.LLMUsage.ChatGPT++
		}
		if r.LLMExperience.ClaudeAI {
			stats.LLMUsage.ClaudeAI++
		}
		if r.LLMExperience.Bard {
			stats.LLMUsage.Bard++
		}
		if r.LLMExperience.Copilot {
			stats.LLMUsage.Copilot++
		}
	}

	stats.ExperienceLevels = make([]models.ExperienceCount, 0, len(levels))
	for level, n := range levels {
		stats.ExperienceLevels = append(stats.ExperienceLevels, models.ExperienceCount{Level: level, Count: n})
	}
	sortExperienceCounts(stats.ExperienceLevels)
	return stats, nil
}

func cloneResponse(r models.SurveyResponse) models.SurveyResponse {
	r.Concerns = cloneStrings(r.Concerns)
	r.LearningGoals = cloneStrings(r.LearningGoals)
	r.UseCases = cloneStrings(r.UseCases)
	return r
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
