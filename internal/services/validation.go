package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/go-playground/validator/v10"
)

// ValidationError reports the first field of a submission that failed the
// schema rules.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("experience", func(fl validator.FieldLevel) bool {
		return models.ExperienceLevel(fl.Field().String()).Valid()
	})
	return v
}

// Normalize applies the coercion rules to a candidate record in place:
// strings are trimmed, blank list entries dropped and the experience level
// lower-cased. Entry order is preserved.
func Normalize(r *models.SurveyResponse) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.PriorExperience = models.ExperienceLevel(strings.ToLower(strings.TrimSpace(string(r.PriorExperience))))
	r.LLMExperience.Other = strings.TrimSpace(r.LLMExperience.Other)
	r.Concerns = compact(r.Concerns)
	r.LearningGoals = compact(r.LearningGoals)
	r.UseCases = compact(r.UseCases)
}

func compact(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks a normalized record against the schema rules and returns a
// *ValidationError describing the first failure.
func Validate(r *models.SurveyResponse) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("validate survey: %w", err)
	}

	fe := ve[0]
	return &ValidationError{Field: fe.Field(), Message: fieldMessage(fe)}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "contains":
		return field + " must be a valid email address"
	case "experience":
		levels := make([]string, 0, len(models.ExperienceLevels))
		for _, l := range models.ExperienceLevels {
			levels = append(levels, string(l))
		}
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(levels, ", "))
	case "min":
		return fmt.Sprintf("%s must contain at least %s entries", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must contain at most %s entries", field, fe.Param())
	}
	return field + " is invalid"
}
