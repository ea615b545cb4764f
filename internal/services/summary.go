package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
)

// SummarySubject is the notification subject line for r.
func SummarySubject(r *models.SurveyResponse) string {
	return "New survey response from " + r.Name
}

// ComposeSummary renders the plain-text notification body for r.
func ComposeSummary(r *models.SurveyResponse) string {
	var b strings.Builder

	b.WriteString("New AI survey response\n\n")
	fmt.Fprintf(&b, "Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Email: %s\n", r.Email)
	fmt.Fprintf(&b, "Experience level: %s\n", r.PriorExperience)

	var used []string
	for _, tool := range models.LLMTools {
		if r.LLMExperience.Used(tool.Key) {
			used = append(used, tool.Label)
		}
	}
	if r.LLMExperience.Other != "" {
		used = append(used, "Other: "+r.LLMExperience.Other)
	}
	if len(used) == 0 {
		b.WriteString("LLMs used: none\n")
	} else {
		fmt.Fprintf(&b, "LLMs used: %s\n", strings.Join(used, ", "))
	}

	writeNumbered(&b, "Concerns", r.Concerns)
	writeNumbered(&b, "Learning goals", r.LearningGoals)
	writeNumbered(&b, "Use cases", r.UseCases)

	if !r.SubmittedAt.IsZero() {
		fmt.Fprintf(&b, "\nSubmitted at: %s\n", r.SubmittedAt.UTC().Format(time.RFC3339))
	}
	return b.String()
}

func writeNumbered(b *strings.Builder, title string, entries []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	if len(entries) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(b, "%d. %s\n", i+1, e)
	}
}
