//go:build integration

package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/AnshRaj112/ai-survey-backend/internal/database"
	"github.com/stretchr/testify/require"
)

// Run with: MONGODB_TEST_URI=mongodb://localhost:27017 go test -tags integration ./internal/services/
func TestMongoStoreConformance(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	m, err := database.ConnectMongo(context.Background(), uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Disconnect() })

	runStoreConformance(t, func(t *testing.T) SurveyStore {
		db := m.Client.Database(fmt.Sprintf("ai_survey_test_%d", time.Now().UnixNano()))
		t.Cleanup(func() { _ = db.Drop(context.Background()) })

		store := NewMongoStore(db)
		require.NoError(t, store.EnsureIndexes(context.Background()))
		return store
	})
}
