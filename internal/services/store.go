package services

import (
	"context"
	"sort"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
)

// SurveyStore persists survey responses and answers the reporting queries.
// Implementations must be safe for concurrent use.
type SurveyStore interface {
	// Insert stores a validated record and sets its ID.
	Insert(ctx context.Context, r *models.SurveyResponse) error
	// List returns records inside rng, newest first.
	List(ctx context.Context, rng models.DateRange) ([]models.SurveyResponse, error)
	// Stats returns aggregate counts over every stored record.
	Stats(ctx context.Context) (*models.SurveyStats, error)
}

// sortExperienceCounts orders rows by the enum order so stats output is stable
// across drivers.
func sortExperienceCounts(rows []models.ExperienceCount) {
	rank := make(map[models.ExperienceLevel]int, len(models.ExperienceLevels))
	for i, l := range models.ExperienceLevels {
		rank[l] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, ok := rank[rows[i].Level]
		if !ok {
			ri = len(rank)
		}
		rj, ok := rank[rows[j].Level]
		if !ok {
			rj = len(rank)
		}
		return ri < rj
	})
}
