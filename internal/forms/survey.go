// Package forms holds the state of the survey web form and the checks it
// runs before a submission is sent.
package forms

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/gorilla/schema"
)

// Fixed number of inputs rendered per list field.
const (
	ConcernSlots      = models.MaxConcerns
	LearningGoalSlots = models.MaxLearningGoals
	UseCaseSlots      = models.MaxUseCases

	// RequiredUseCases is the number of leading use-case slots that must be
	// filled; the rest are optional.
	RequiredUseCases = models.MinUseCases
)

// LLMState mirrors the per-tool checkboxes.
type LLMState struct {
	ChatGPT  bool   `schema:"chatGPT"`
	ClaudeAI bool   `schema:"claudeAI"`
	Bard     bool   `schema:"bard"`
	Copilot  bool   `schema:"copilot"`
	Other    string `schema:"other"`
}

// State is the in-memory form state. It mirrors models.SurveyResponse with
// fixed-size list fields.
type State struct {
	Name            string   `schema:"name"`
	Email           string   `schema:"email"`
	PriorExperience string   `schema:"priorExperience"`
	LLMExperience   LLMState `schema:"llmExperience"`
	Concerns        []string `schema:"concerns"`
	LearningGoals   []string `schema:"learningGoals"`
	UseCases        []string `schema:"useCases"`
}

// New returns an empty form with the default experience level selected.
func New() *State {
	s := &State{PriorExperience: string(models.ExperienceNone)}
	s.pad()
	return s
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	// Keep empty inputs so list positions survive a re-render.
	d.ZeroEmpty(true)
	return d
}

// Decode builds form state from a posted form. On a conversion error the
// returned state still holds every field that decoded, so the form can be
// shown again with the entered data.
func Decode(values url.Values) (*State, error) {
	s := New()
	s.Concerns, s.LearningGoals, s.UseCases = nil, nil, nil
	err := decoder.Decode(s, values)
	if s.PriorExperience == "" {
		s.PriorExperience = string(models.ExperienceNone)
	}
	s.pad()
	if err != nil {
		return s, fmt.Errorf("decode survey form: %w", err)
	}
	return s, nil
}

// pad grows every list to its slot count. Longer lists are kept so Validate
// can reject them.
func (s *State) pad() {
	s.Concerns = fit(s.Concerns, ConcernSlots)
	s.LearningGoals = fit(s.LearningGoals, LearningGoalSlots)
	s.UseCases = fit(s.UseCases, UseCaseSlots)
}

func fit(entries []string, n int) []string {
	if len(entries) > n {
		n = len(entries)
	}
	out := make([]string, n)
	copy(out, entries)
	return out
}

// Errors maps a form field name to the message shown next to it.
type Errors map[string]string

// Validate runs the presence and format checks performed before submitting.
func (s *State) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(s.Name) == "" {
		errs["name"] = "Name is required"
	}
	email := strings.TrimSpace(s.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !strings.Contains(email, "@"):
		errs["email"] = "Please enter a valid email address"
	}
	if !models.ExperienceLevel(s.PriorExperience).Valid() {
		errs["priorExperience"] = "Please select your experience level"
	}
	checkList(errs, "concerns", s.Concerns, ConcernSlots, ConcernSlots, "concerns")
	checkList(errs, "learningGoals", s.LearningGoals, LearningGoalSlots, LearningGoalSlots, "learning goals")
	checkList(errs, "useCases", s.UseCases, RequiredUseCases, UseCaseSlots, "use cases")
	return errs
}

// checkList requires the leading required slots to be filled and at most
// limit entries overall.
func checkList(errs Errors, field string, entries []string, required, limit int, noun string) {
	if filled(entries) > limit {
		errs[field] = fmt.Sprintf("Please enter at most %d %s", limit, noun)
		return
	}
	for i := 0; i < required && i < len(entries); i++ {
		if strings.TrimSpace(entries[i]) == "" {
			if required == limit {
				errs[field] = fmt.Sprintf("Please enter all %d %s", required, noun)
			} else {
				errs[field] = fmt.Sprintf("Please fill in the first %d %s", required, noun)
			}
			return
		}
	}
}

func filled(entries []string) int {
	n := 0
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			n++
		}
	}
	return n
}

// Response converts the form state into a candidate record for submission.
func (s *State) Response() models.SurveyResponse {
	return models.SurveyResponse{
		Name:            s.Name,
		Email:           s.Email,
		PriorExperience: models.ExperienceLevel(s.PriorExperience),
		LLMExperience:   s.llm(),
		Concerns:        append([]string(nil), s.Concerns...),
		LearningGoals:   append([]string(nil), s.LearningGoals...),
		UseCases:        append([]string(nil), s.UseCases...),
	}
}

func (s *State) llm() models.LLMExperience {
	return models.LLMExperience{
		ChatGPT:  s.LLMExperience.ChatGPT,
		ClaudeAI: s.LLMExperience.ClaudeAI,
		Bard:     s.LLMExperience.Bard,
		Copilot:  s.LLMExperience.Copilot,
		Other:    s.LLMExperience.Other,
	}
}

// Checked reports whether the checkbox for tool key is ticked.
func (s *State) Checked(key string) bool {
	return s.llm().Used(key)
}
