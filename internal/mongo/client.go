package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pulseboard/pulseboard/internal/config"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
)

// Collection names used by the repositories
const (
	CollectionUsers         = "users"
	CollectionRevenues      = "revenues"
	CollectionActivities    = "activities"
	CollectionTraffic       = "traffic"
	CollectionReports       = "reports"
	CollectionNotifications = "notifications"
)

// Client wraps the mongo driver client with the configured database handle
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

// NewClient connects to MongoDB and verifies the connection
func NewClient(ctx context.Context, cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to MongoDB").
			Mark(ierr.ErrDatabase)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to ping MongoDB").
			Mark(ierr.ErrDatabase)
	}

	log.Infow("connected to mongodb", "database", cfg.Mongo.Database)

	return &Client{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
		logger: log,
	}, nil
}

// Collection returns a handle to a named collection
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Disconnect closes the underlying connection pool
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the query paths rely on. Revenue is
// unique per (user, month, year); the rest are scoped lookups.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bsonD("email", 1), Options: options.Index().SetUnique(true)},
		},
		CollectionRevenues: {
			{Keys: bsonD3("user_id", 1, "month", 1, "year", 1), Options: options.Index().SetUnique(true)},
		},
		CollectionActivities: {
			{Keys: bsonD2("user_id", 1, "date", 1)},
		},
		CollectionTraffic: {
			{Keys: bsonD("user_id", 1)},
		},
		CollectionReports: {
			{Keys: bsonD2("user_id", 1, "created_at", -1)},
			{Keys: bsonD2("scheduled.enabled", 1, "scheduled.next_run", 1)},
		},
		CollectionNotifications: {
			{Keys: bsonD2("user_id", 1, "created_at", -1)},
		},
	}

	for name, models := range specs {
		if _, err := c.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return ierr.WithError(err).
				WithHintf("Failed to create indexes for %s", name).
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}
