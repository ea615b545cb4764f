package models

import (
	"time"
)

// ExperienceLevel is the respondent's self-reported familiarity with AI/LLMs.
type ExperienceLevel string

const (
	ExperienceNone     ExperienceLevel = "none"
	ExperienceBasic    ExperienceLevel = "basic"
	ExperienceSome     ExperienceLevel = "some"
	ExperienceRegular  ExperienceLevel = "regular"
	ExperienceAdvanced ExperienceLevel = "advanced"
)

// ExperienceLevels lists every valid level in display order.
var ExperienceLevels = []ExperienceLevel{
	ExperienceNone,
	ExperienceBasic,
	ExperienceSome,
	ExperienceRegular,
	ExperienceAdvanced,
}

// Valid reports whether l is one of ExperienceLevels.
func (l ExperienceLevel) Valid() bool {
	for _, v := range ExperienceLevels {
		if v == l {
			return true
		}
	}
	return false
}

// Label is the human readable text shown in the form select.
func (l ExperienceLevel) Label() string {
	switch l {
	case ExperienceNone:
		return "No experience"
	case ExperienceBasic:
		return "Basic understanding"
	case ExperienceSome:
		return "Some experience"
	case ExperienceRegular:
		return "Regular user"
	case ExperienceAdvanced:
		return "Advanced user"
	}
	return string(l)
}

// List size limits
const (
	MaxConcerns      = 3
	MaxLearningGoals = 3
	MaxUseCases      = 5
	MinUseCases      = 3
)

// LLMExperience records which named tools the respondent has used.
type LLMExperience struct {
	ChatGPT  bool   `bson:"chatGPT" json:"chatGPT"`
	ClaudeAI bool   `bson:"claudeAI" json:"claudeAI"`
	Bard     bool   `bson:"bard" json:"bard"`
	Copilot  bool   `bson:"copilot" json:"copilot"`
	Other    string `bson:"other" json:"other"`
}

// LLMTool names one of the boolean flags of LLMExperience.
type LLMTool struct {
	Key   string
	Label string
}

// LLMTools lists the named tools in form order.
var LLMTools = []LLMTool{
	{Key: "chatGPT", Label: "ChatGPT"},
	{Key: "claudeAI", Label: "Claude AI"},
	{Key: "bard", Label: "Google Bard"},
	{Key: "copilot", Label: "GitHub Copilot"},
}

// Used reports the flag for the tool identified by key.
func (e LLMExperience) Used(key string) bool {
	switch key {
	case "chatGPT":
		return e.ChatGPT
	case "claudeAI":
		return e.ClaudeAI
	case "bard":
		return e.Bard
	case "copilot":
		return e.Copilot
	}
	return false
}

// SurveyResponse is one stored survey submission. It is the only schema used
// by the submission path, the query path and every store driver.
type SurveyResponse struct {
	// ID is assigned by the store.
	ID string `bson:"-" json:"_id"`

	Name            string          `bson:"name" json:"name" validate:"required"`
	Email           string          `bson:"email" json:"email" validate:"required,contains=@"`
	PriorExperience ExperienceLevel `bson:"priorExperience" json:"priorExperience" validate:"required,experience"`
	LLMExperience   LLMExperience   `bson:"llmExperience" json:"llmExperience"`
	Concerns        []string        `bson:"concerns" json:"concerns" validate:"max=3"`
	LearningGoals   []string        `bson:"learningGoals" json:"learningGoals" validate:"max=3"`
	UseCases        []string        `bson:"useCases" json:"useCases" validate:"min=3,max=5"`

	// SubmittedAt is set by the server when the record is stored.
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
}

// DateRange bounds a listing by submittedAt, both ends inclusive. A nil bound
// is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// ExperienceCount is one row of the per-level breakdown.
type ExperienceCount struct {
	Level ExperienceLevel `bson:"_id" json:"_id"`
	Count int64           `bson:"count" json:"count"`
}

// LLMUsage counts records with each named tool flag set.
type LLMUsage struct {
	ChatGPT  int64 `bson:"chatGPT" json:"chatGPT"`
	ClaudeAI int64 `bson:"claudeAI" json:"claudeAI"`
	Bard     int64 `bson:"bard" json:"bard"`
	Copilot  int64 `bson:"copilot" json:"copilot"`
}

// SurveyStats is the aggregate summary returned by the stats endpoint.
type SurveyStats struct {
	TotalResponses   int64             `json:"totalResponses"`
	ExperienceLevels []ExperienceCount `json:"experienceLevels"`
	LLMUsage         LLMUsage          `json:"llmUsage"`
}
