package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/AnshRaj112/ai-survey-backend/pkg/logger"
)

// ErrNotificationFailed is returned by Submit when the record was stored but
// the notification could not be sent. The record is not rolled back.
var ErrNotificationFailed = errors.New("survey saved but notification email failed")

const (
	storeTimeout  = 5 * time.Second
	notifyTimeout = 10 * time.Second
)

// SurveyService validates, stores and announces survey submissions and
// serves the reporting queries.
type SurveyService struct {
	store    SurveyStore
	notifier Notifier
	log      *logger.Logger

	now func() time.Time
}

// NewSurveyService wires a store and an optional notifier (nil disables mail).
func NewSurveyService(store SurveyStore, notifier Notifier, log *logger.Logger) *SurveyService {
	if log == nil {
		log = logger.Nop()
	}
	return &SurveyService{
		store:    store,
		notifier: notifier,
		log:      log.With("service", "SurveyService"),
		now:      time.Now,
	}
}

// NotificationsEnabled reports whether submissions are emailed.
func (s *SurveyService) NotificationsEnabled() bool {
	return s.notifier != nil
}

// Submit normalizes and validates candidate, stamps submittedAt, stores it and
// sends the notification. A *ValidationError means nothing was stored. An
// error wrapping ErrNotificationFailed comes with the stored record.
func (s *SurveyService) Submit(ctx context.Context, candidate models.SurveyResponse) (*models.SurveyResponse, error) {
	record := candidate
	record.ID = ""
	Normalize(&record)
	if err := Validate(&record); err != nil {
		return nil, err
	}
	record.SubmittedAt = s.now().UTC().Truncate(time.Millisecond)

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.store.Insert(storeCtx, &record); err != nil {
		return nil, fmt.Errorf("store survey: %w", err)
	}
	s.log.Info("survey stored", "id", record.ID, "experience", record.PriorExperience)

	if s.notifier == nil {
		return &record, nil
	}

	notifyCtx, notifyCancel := context.WithTimeout(ctx, notifyTimeout)
	defer notifyCancel()
	if err := s.notifier.Notify(notifyCtx, &record); err != nil {
		s.log.Error("survey notification failed", "id", record.ID, "error", err)
		return &record, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return &record, nil
}

// List returns stored responses inside rng, newest first.
func (s *SurveyService) List(ctx context.Context, rng models.DateRange) ([]models.SurveyResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.List(ctx, rng)
}

// Stats returns aggregate counts over all stored responses.
func (s *SurveyService) Stats(ctx context.Context) (*models.SurveyStats, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.store.Stats(ctx)
}
