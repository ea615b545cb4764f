package services

import (
	"testing"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResponse() models.SurveyResponse {
	return models.SurveyResponse{
		Name:            "Ann",
		Email:           "a@x.com",
		PriorExperience: models.ExperienceSome,
		LLMExperience:   models.LLMExperience{ChatGPT: true},
		Concerns:        []string{"cost", "bias", "privacy"},
		LearningGoals:   []string{"prompting", "limits", "safety"},
		UseCases:        []string{"drafting", "summaries", "coding"},
	}
}

func TestNormalize(t *testing.T) {
	r := models.SurveyResponse{
		Name:            "  Ann ",
		Email:           " a@x.com",
		PriorExperience: " Some ",
		LLMExperience:   models.LLMExperience{Other: "  Mistral "},
		Concerns:        []string{"", " cost ", "  ", "bias"},
		LearningGoals:   nil,
		UseCases:        []string{"drafting", "", "coding", "", ""},
	}

	Normalize(&r)

	assert.Equal(t, "Ann", r.Name)
	assert.Equal(t, "a@x.com", r.Email)
	assert.Equal(t, models.ExperienceSome, r.PriorExperience)
	assert.Equal(t, "Mistral", r.LLMExperience.Other)
	assert.Equal(t, []string{"cost", "bias"}, r.Concerns)
	assert.NotNil(t, r.LearningGoals)
	assert.Empty(t, r.LearningGoals)
	assert.Equal(t, []string{"drafting", "coding"}, r.UseCases)
}

func TestValidateAcceptsValidResponse(t *testing.T) {
	r := validResponse()
	Normalize(&r)
	require.NoError(t, Validate(&r))
}

func TestValidateAcceptsEveryExperienceLevel(t *testing.T) {
	for _, level := range models.ExperienceLevels {
		r := validResponse()
		r.PriorExperience = level
		assert.NoError(t, Validate(&r), level)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.SurveyResponse)
		field   string
		message string
	}{
		{
			name:    "missing name",
			mutate:  func(r *models.SurveyResponse) { r.Name = "" },
			field:   "name",
			message: "name is required",
		},
		{
			name:    "missing email",
			mutate:  func(r *models.SurveyResponse) { r.Email = "" },
			field:   "email",
			message: "email is required",
		},
		{
			name:    "email without at sign",
			mutate:  func(r *models.SurveyResponse) { r.Email = "ann.example.com" },
			field:   "email",
			message: "email must be a valid email address",
		},
		{
			name:    "missing experience",
			mutate:  func(r *models.SurveyResponse) { r.PriorExperience = "" },
			field:   "priorExperience",
			message: "priorExperience is required",
		},
		{
			name:    "unknown experience",
			mutate:  func(r *models.SurveyResponse) { r.PriorExperience = "expert" },
			field:   "priorExperience",
			message: "priorExperience must be one of: none, basic, some, regular, advanced",
		},
		{
			name:    "too many concerns",
			mutate:  func(r *models.SurveyResponse) { r.Concerns = []string{"a", "b", "c", "d"} },
			field:   "concerns",
			message: "concerns must contain at most 3 entries",
		},
		{
			name:    "too many use cases",
			mutate:  func(r *models.SurveyResponse) { r.UseCases = []string{"1", "2", "3", "4", "5", "6"} },
			field:   "useCases",
			message: "useCases must contain at most 5 entries",
		},
		{
			name:    "too few use cases",
			mutate:  func(r *models.SurveyResponse) { r.UseCases = []string{"drafting", "coding"} },
			field:   "useCases",
			message: "useCases must contain at least 3 entries",
		},
		{
			name:    "no use cases",
			mutate:  func(r *models.SurveyResponse) { r.UseCases = nil },
			field:   "useCases",
			message: "useCases must contain at least 3 entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResponse()
			tt.mutate(&r)

			err := Validate(&r)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestValidateWhitespaceNameAfterNormalize(t *testing.T) {
	r := validResponse()
	r.Name = "   "
	Normalize(&r)

	var ve *ValidationError
	require.ErrorAs(t, Validate(&r), &ve)
	assert.Equal(t, "name", ve.Field)
}
