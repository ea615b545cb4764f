package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/AnshRaj112/ai-survey-backend/internal/services"
	"github.com/AnshRaj112/ai-survey-backend/pkg/logger"
)

// SurveyHandler serves the JSON survey API.
type SurveyHandler struct {
	svc *services.SurveyService
	log *logger.Logger
}

func NewSurveyHandler(svc *services.SurveyService, log *logger.Logger) *SurveyHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SurveyHandler{svc: svc, log: log.With("handler", "survey")}
}

// decodeSubmission accepts the bare payload or one wrapped in a "formData"
// envelope. Client-supplied _id and submittedAt are dropped.
func decodeSubmission(body []byte) (models.SurveyResponse, error) {
	var candidate models.SurveyResponse

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return candidate, err
	}
	if raw, ok := fields["formData"]; ok {
		fields = nil
		if err := json.Unmarshal(raw, &fields); err != nil {
			return candidate, err
		}
	}
	delete(fields, "_id")
	delete(fields, "submittedAt")

	payload, err := json.Marshal(fields)
	if err != nil {
		return candidate, err
	}
	if err := json.Unmarshal(payload, &candidate); err != nil {
		return candidate, err
	}
	return candidate, nil
}

// SubmitSurvey handles submitting a survey response
func (h *SurveyHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	candidate, err := decodeSubmission(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.svc.Submit(r.Context(), candidate)
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	case errors.Is(err, services.ErrNotificationFailed):
		writeJSON(w, http.StatusInternalServerError, MessageResponse{
			Success: false,
			Message: "Survey saved but notification email failed",
			ID:      record.ID,
			Saved:   true,
		})
		return
	case err != nil:
		h.log.Error("submit survey failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit survey")
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{
		Success: true,
		Message: "Survey submitted successfully",
		ID:      record.ID,
	})
}

// parseDateParam accepts RFC 3339 timestamps or YYYY-MM-DD dates (midnight
// UTC). An empty value is an open bound.
func parseDateParam(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", name)
}

// GetResponses handles listing survey responses, optionally bounded by
// startDate and endDate (inclusive), newest first.
func (h *SurveyHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, err := parseDateParam("startDate", query.Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseDateParam("endDate", query.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	responses, err := h.svc.List(r.Context(), models.DateRange{Start: start, End: end})
	if err != nil {
		h.log.Error("list surveys failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch survey responses")
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetStats handles the aggregate statistics endpoint.
func (h *SurveyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.log.Error("survey stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch survey statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
