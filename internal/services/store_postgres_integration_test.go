//go:build integration

package services

import (
	"context"
	"os"
	"testing"

	"github.com/AnshRaj112/ai-survey-backend/internal/database"
	"github.com/stretchr/testify/require"
)

// Run with: POSTGRES_TEST_URI=postgres://localhost:5432/ai_survey_test?sslmode=disable go test -tags integration ./internal/services/
func TestPostgresStoreConformance(t *testing.T) {
	uri := os.Getenv("POSTGRES_TEST_URI")
	if uri == "" {
		t.Skip("POSTGRES_TEST_URI not set")
	}

	db, err := database.ConnectPostgres(context.Background(), uri)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runStoreConformance(t, func(t *testing.T) SurveyStore {
		_, err := db.Exec(`TRUNCATE survey_responses`)
		require.NoError(t, err)
		return NewPostgresStore(db)
	})
}
