package database

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMongoDatabase is used when the connection string names no database.
const DefaultMongoDatabase = "ai-survey"

// Mongo holds an open MongoDB client and the database selected from the URI.
// The host process owns its lifecycle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectMongo opens a client and verifies it with a ping.
func ConnectMongo(ctx context.Context, mongoURI string) (*Mongo, error) {
	// Use longer timeout for Atlas connections
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Mongo{
		Client: client,
		DB:     client.Database(DatabaseName(mongoURI)),
	}, nil
}

// Disconnect closes the client.
func (m *Mongo) Disconnect() error {
	if m == nil || m.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// DatabaseName extracts the database from a connection string of the form
// mongodb://host/database?options, falling back to DefaultMongoDatabase.
func DatabaseName(mongoURI string) string {
	parts := strings.SplitN(mongoURI, "://", 2)
	if len(parts) != 2 {
		return DefaultMongoDatabase
	}
	rest := parts[1]
	idx := strings.Index(rest, "/")
	if idx == -1 {
		return DefaultMongoDatabase
	}
	dbPart := strings.SplitN(rest[idx+1:], "?", 2)[0]
	if dbPart == "" {
		return DefaultMongoDatabase
	}
	return dbPart
}

// MaskURI hides the password of a connection string for logging.
func MaskURI(uri string) string {
	schemeEnd := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if schemeEnd == -1 || at == -1 || at < schemeEnd {
		return uri
	}
	userInfo := uri[schemeEnd+3 : at]
	colon := strings.Index(userInfo, ":")
	if colon == -1 {
		return uri
	}
	return uri[:schemeEnd+3] + userInfo[:colon] + ":***" + uri[at:]
}
