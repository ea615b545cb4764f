package services

import (
	"context"
	"fmt"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SurveyCollection is the MongoDB collection holding survey responses.
const SurveyCollection = "surveys"

// MongoStore stores responses as documents in a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(SurveyCollection)}
}

// surveyDocument adds the ObjectID key to the canonical record.
type surveyDocument struct {
	ID                    primitive.ObjectID `bson:"_id"`
	models.SurveyResponse `bson:",inline"`
}

// EnsureIndexes creates the submittedAt index used by listings.
// Called on startup from main after Mongo has connected.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "submittedAt", Value: -1}},
		Options: options.Index().SetName("idx_submitted_at"),
	})
	return err
}

func (s *MongoStore) Insert(ctx context.Context, r *models.SurveyResponse) error {
	doc := surveyDocument{ID: primitive.NewObjectID(), SurveyResponse: *r}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}
	r.ID = doc.ID.Hex()
	return nil
}

// dateFilter builds the submittedAt match for rng.
func dateFilter(rng models.DateRange) bson.M {
	filter := bson.M{}
	if rng.Start == nil && rng.End == nil {
		return filter
	}
	bounds := bson.M{}
	if rng.Start != nil {
		bounds["$gte"] = rng.Start.UTC()
	}
	if rng.End != nil {
		bounds["$lte"] = rng.End.UTC()
	}
	filter["submittedAt"] = bounds
	return filter
}

func (s *MongoStore) List(ctx context.Context, rng models.DateRange) ([]models.SurveyResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})

	cur, err := s.col.Find(ctx, dateFilter(rng), opts)
	if err != nil {
		return nil, fmt.Errorf("find surveys: %w", err)
	}
	defer cur.Close(ctx)

	var docs []surveyDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode surveys: %w", err)
	}

	out := make([]models.SurveyResponse, 0, len(docs))
	for _, d := range docs {
		r := d.SurveyResponse
		r.ID = d.ID.Hex()
		out = append(out, r)
	}
	return out, nil
}

func (s *MongoStore) Stats(ctx context.Context) (*models.SurveyStats, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count surveys: %w", err)
	}

	levelCur, err := s.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$priorExperience"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate experience levels: %w", err)
	}
	levels := make([]models.ExperienceCount, 0, len(models.ExperienceLevels))
	if err := levelCur.All(ctx, &levels); err != nil {
		return nil, fmt.Errorf("decode experience levels: %w", err)
	}
	sortExperienceCounts(levels)

	usageCur, err := s.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "chatGPT", Value: countFlag("chatGPT")},
			{Key: "claudeAI", Value: countFlag("claudeAI")},
			{Key: "bard", Value: countFlag("bard")},
			{Key: "copilot", Value: countFlag("copilot")},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate llm usage: %w", err)
	}
	var usage []models.LLMUsage
	if err := usageCur.All(ctx, &usage); err != nil {
		return nil, fmt.Errorf("decode llm usage: %w", err)
	}

	stats := &models.SurveyStats{
		TotalResponses:   total,
		ExperienceLevels: levels,
	}
	// An empty collection yields no group document.
	if len(usage) > 0 {
		stats.LLMUsage = usage[0]
	}
	return stats, nil
}

func countFlag(key string) bson.D {
	return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{"$llmExperience." + key, 1, 0}}}}}
}
