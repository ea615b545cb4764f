package handlers

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/AnshRaj112/ai-survey-backend/internal/forms"
	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/AnshRaj112/ai-survey-backend/internal/services"
	"github.com/AnshRaj112/ai-survey-backend/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const submitFailedMessage = "Failed to submit survey. Please try again."

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.html"))

// StaticFiles serves the form's script and stylesheet.
func StaticFiles() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

type levelOption struct {
	Value    string
	Label    string
	Selected bool
}

type toolOption struct {
	Key     string
	Label   string
	Checked bool
}

type formPage struct {
	Form   *forms.State
	Errors forms.Errors
	Error  string
	Levels []levelOption
	Tools  []toolOption
	// RequiredUseCases marks the leading use-case inputs as required.
	RequiredUseCases int
}

func newFormPage(state *forms.State, errs forms.Errors, message string) formPage {
	page := formPage{Form: state, Errors: errs, Error: message, RequiredUseCases: forms.RequiredUseCases}
	for _, l := range models.ExperienceLevels {
		page.Levels = append(page.Levels, levelOption{
			Value:    string(l),
			Label:    l.Label(),
			Selected: string(l) == state.PriorExperience,
		})
	}
	for _, t := range models.LLMTools {
		page.Tools = append(page.Tools, toolOption{Key: t.Key, Label: t.Label, Checked: state.Checked(t.Key)})
	}
	return page
}

// FormHandler serves the server-rendered survey form.
type FormHandler struct {
	svc *services.SurveyService
	log *logger.Logger
}

func NewFormHandler(svc *services.SurveyService, log *logger.Logger) *FormHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &FormHandler{svc: svc, log: log.With("handler", "form")}
}

func (h *FormHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("render template failed", "template", name, "error", err)
	}
}

// ShowForm renders an empty survey form.
func (h *FormHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "survey.html", newFormPage(forms.New(), nil, ""))
}

// SubmitForm handles the plain form post. Entered data is kept on every
// failure so the respondent can correct it and retry.
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	parseErr := r.ParseForm()
	state, err := forms.Decode(r.PostForm)
	if parseErr != nil || err != nil {
		h.log.Warn("unreadable form post", "parse_error", parseErr, "decode_error", err)
		h.render(w, http.StatusBadRequest, "survey.html", newFormPage(state, state.Validate(), submitFailedMessage))
		return
	}

	if errs := state.Validate(); len(errs) > 0 {
		h.render(w, http.StatusBadRequest, "survey.html", newFormPage(state, errs, ""))
		return
	}

	_, err = h.svc.Submit(r.Context(), state.Response())
	var ve *services.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		h.render(w, http.StatusBadRequest, "survey.html",
			newFormPage(state, forms.Errors{ve.Field: ve.Message}, submitFailedMessage))
		return
	case errors.Is(err, services.ErrNotificationFailed):
		// Stored; a resubmit would only duplicate the record.
	default:
		h.log.Error("form submission failed", "error", err)
		h.render(w, http.StatusInternalServerError, "survey.html", newFormPage(state, nil, submitFailedMessage))
		return
	}

	h.render(w, http.StatusOK, "thanks.html", nil)
}
