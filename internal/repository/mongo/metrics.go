package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseboard/pulseboard/internal/domain/metrics"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
	db "github.com/pulseboard/pulseboard/internal/mongo"
)

type revenueRepository struct {
	client *db.Client
	log    *logger.Logger
}

// NewRevenueRepository creates a MongoDB-backed revenue repository
func NewRevenueRepository(client *db.Client, log *logger.Logger) metrics.RevenueRepository {
	return &revenueRepository{client: client, log: log}
}

func (r *revenueRepository) Create(ctx context.Context, rev *metrics.Revenue) error {
	if _, err := r.client.Collection(db.CollectionRevenues).InsertOne(ctx, rev); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHint("A revenue record for this month already exists").
				WithReportableDetails(map[string]interface{}{
					"month": rev.Month,
					"year":  rev.Year,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create revenue record").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *revenueRepository) ListByYear(ctx context.Context, userID string, year int, since *time.Time) ([]*metrics.Revenue, error) {
	query := bson.M{"user_id": userID, "year": year}
	if since != nil {
		query["created_at"] = bson.M{"$gte": *since}
	}

	cursor, err := r.client.Collection(db.CollectionRevenues).Find(ctx, query)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list revenue records").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var rows []*metrics.Revenue
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode revenue records").
			Mark(ierr.ErrDatabase)
	}
	return rows, nil
}

func (r *revenueRepository) GetByMonth(ctx context.Context, userID string, month string, year int) (*metrics.Revenue, error) {
	var rev metrics.Revenue
	err := r.client.Collection(db.CollectionRevenues).
		FindOne(ctx, bson.M{"user_id": userID, "month": month, "year": year}).
		Decode(&rev)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.WithError(err).
				WithHintf("No revenue record for %s %d", month, year).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get revenue record").
			Mark(ierr.ErrDatabase)
	}
	return &rev, nil
}

type activityRepository struct {
	client *db.Client
	log    *logger.Logger
}

// NewActivityRepository creates a MongoDB-backed activity repository
func NewActivityRepository(client *db.Client, log *logger.Logger) metrics.ActivityRepository {
	return &activityRepository{client: client, log: log}
}

func (r *activityRepository) Create(ctx context.Context, a *metrics.Activity) error {
	if _, err := r.client.Collection(db.CollectionActivities).InsertOne(ctx, a); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create activity record").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *activityRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]*metrics.Activity, error) {
	query := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.client.Collection(db.CollectionActivities).Find(ctx, query, opts)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list activity records").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var rows []*metrics.Activity
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode activity records").
			Mark(ierr.ErrDatabase)
	}
	return rows, nil
}

func (r *activityRepository) SumTotals(ctx context.Context, userID string, before *time.Time) (*metrics.ActivityTotals, error) {
	match := bson.M{"user_id": userID}
	if before != nil {
		match["date"] = bson.M{"$lt": *before}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"active": bson.M{"$sum": "$active"},
			"new":    bson.M{"$sum": "$new"},
		}}},
	}

	cursor, err := r.client.Collection(db.CollectionActivities).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to sum activity totals").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var rows []*metrics.ActivityTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode activity totals").
			Mark(ierr.ErrDatabase)
	}
	if len(rows) == 0 {
		return &metrics.ActivityTotals{}, nil
	}
	return rows[0], nil
}

type trafficRepository struct {
	client *db.Client
	log    *logger.Logger
}

// NewTrafficRepository creates a MongoDB-backed traffic repository
func NewTrafficRepository(client *db.Client, log *logger.Logger) metrics.TrafficRepository {
	return &trafficRepository{client: client, log: log}
}

func (r *trafficRepository) Create(ctx context.Context, t *metrics.Traffic) error {
	if _, err := r.client.Collection(db.CollectionTraffic).InsertOne(ctx, t); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create traffic record").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *trafficRepository) TotalsBySource(ctx context.Context, userID string, since *time.Time) ([]*metrics.TrafficSourceTotal, error) {
	match := bson.M{"user_id": userID}
	if since != nil {
		match["date"] = bson.M{"$gte": *since}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$name",
			"total": bson.M{"$sum": "$value"},
			"fill":  bson.M{"$first": "$fill"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.client.Collection(db.CollectionTraffic).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to aggregate traffic by source").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var rows []*metrics.TrafficSourceTotal
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode traffic totals").
			Mark(ierr.ErrDatabase)
	}
	return rows, nil
}
