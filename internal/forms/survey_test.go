package forms

import (
	"net/url"
	"testing"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, "none", s.PriorExperience)
	assert.Len(t, s.Concerns, ConcernSlots)
	assert.Len(t, s.LearningGoals, LearningGoalSlots)
	assert.Len(t, s.UseCases, UseCaseSlots)
	assert.False(t, s.Checked("chatGPT"))
}

func TestDecode(t *testing.T) {
	s, err := Decode(url.Values{
		"name":                  {"Ann"},
		"email":                 {"a@x.com"},
		"priorExperience":       {"regular"},
		"llmExperience.chatGPT": {"true"},
		"llmExperience.copilot": {"true"},
		"llmExperience.other":   {"Mistral"},
		"concerns":              {"", "bias"},
		"useCases":              {"drafting", "", "coding"},
		"unknownField":          {"ignored"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", s.Name)
	assert.Equal(t, "regular", s.PriorExperience)
	assert.True(t, s.Checked("chatGPT"))
	assert.True(t, s.Checked("copilot"))
	assert.False(t, s.Checked("bard"))
	assert.Equal(t, "Mistral", s.LLMExperience.Other)
	assert.Equal(t, []string{"", "bias", ""}, s.Concerns)
	assert.Equal(t, []string{"", "", ""}, s.LearningGoals)
	assert.Equal(t, []string{"drafting", "", "coding", "", ""}, s.UseCases)
}

func TestDecodeDefaultsExperience(t *testing.T) {
	s, err := Decode(url.Values{"name": {"Ann"}})
	require.NoError(t, err)
	assert.Equal(t, "none", s.PriorExperience)
}

func TestDecodeKeepsExtraEntries(t *testing.T) {
	s, err := Decode(url.Values{"useCases": {"1", "2", "3", "4", "5", "6"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, s.UseCases)
	assert.Equal(t, "Please enter at most 5 use cases", s.Validate()["useCases"])
}

func TestDecodeConversionErrorKeepsFields(t *testing.T) {
	s, err := Decode(url.Values{
		"name":               {"Ann"},
		"llmExperience.bard": {"maybe"},
		"concerns":           {"cost"},
	})
	require.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Ann", s.Name)
	assert.Equal(t, []string{"cost", "", ""}, s.Concerns)
	assert.Len(t, s.UseCases, UseCaseSlots)
}

func TestValidate(t *testing.T) {
	s := New()
	s.Email = "nope"
	s.PriorExperience = "guru"

	errs := s.Validate()
	assert.Equal(t, Errors{
		"name":            "Name is required",
		"email":           "Please enter a valid email address",
		"priorExperience": "Please select your experience level",
		"concerns":        "Please enter all 3 concerns",
		"learningGoals":   "Please enter all 3 learning goals",
		"useCases":        "Please fill in the first 3 use cases",
	}, errs)

	s.Email = "  "
	assert.Equal(t, "Email is required", s.Validate()["email"])
}

func filledForm() *State {
	s := New()
	s.Name = "Ann"
	s.Email = "a@x.com"
	copy(s.Concerns, []string{"cost", "bias", "privacy"})
	copy(s.LearningGoals, []string{"prompting", "limits", "safety"})
	copy(s.UseCases, []string{"drafting", "summaries", "coding"})
	return s
}

func TestValidatePasses(t *testing.T) {
	s := filledForm()
	assert.Empty(t, s.Validate())

	s.UseCases[4] = "reviews"
	assert.Empty(t, s.Validate())
}

func TestValidateListRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *State)
		field   string
		message string
	}{
		{
			name:    "missing concern",
			mutate:  func(s *State) { s.Concerns[1] = " " },
			field:   "concerns",
			message: "Please enter all 3 concerns",
		},
		{
			name:    "missing learning goal",
			mutate:  func(s *State) { s.LearningGoals[2] = "" },
			field:   "learningGoals",
			message: "Please enter all 3 learning goals",
		},
		{
			name:    "two use cases",
			mutate:  func(s *State) { s.UseCases[2] = "" },
			field:   "useCases",
			message: "Please fill in the first 3 use cases",
		},
		{
			name:    "third use case in an optional slot",
			mutate:  func(s *State) { s.UseCases[2], s.UseCases[3] = "", "coding" },
			field:   "useCases",
			message: "Please fill in the first 3 use cases",
		},
		{
			name:    "too many concerns",
			mutate:  func(s *State) { s.Concerns = append(s.Concerns, "jobs") },
			field:   "concerns",
			message: "Please enter at most 3 concerns",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := filledForm()
			tt.mutate(s)

			errs := s.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestResponse(t *testing.T) {
	s := New()
	s.Name = "Ann"
	s.Email = "a@x.com"
	s.PriorExperience = "advanced"
	s.LLMExperience.ClaudeAI = true
	s.Concerns[0] = "cost"

	r := s.Response()
	assert.Equal(t, models.ExperienceAdvanced, r.PriorExperience)
	assert.True(t, r.LLMExperience.ClaudeAI)
	assert.Equal(t, []string{"cost", "", ""}, r.Concerns)

	r.Concerns[0] = "changed"
	assert.Equal(t, "cost", s.Concerns[0])
}
