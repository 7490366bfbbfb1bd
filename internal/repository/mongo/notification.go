package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseboard/pulseboard/internal/domain/notification"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
	db "github.com/pulseboard/pulseboard/internal/mongo"
)

type notificationRepository struct {
	client *db.Client
	log    *logger.Logger
}

// NewNotificationRepository creates a MongoDB-backed notification repository
func NewNotificationRepository(client *db.Client, log *logger.Logger) notification.Repository {
	return &notificationRepository{client: client, log: log}
}

func (r *notificationRepository) collection() *mongo.Collection {
	return r.client.Collection(db.CollectionNotifications)
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if _, err := r.collection().InsertOne(ctx, n); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create notification").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	var n notification.Notification
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.WithError(err).
				WithHintf("Notification not found: %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get notification").
			Mark(ierr.ErrDatabase)
	}
	return &n, nil
}

// visibilityQuery covers the user's own notifications plus system-wide ones
func visibilityQuery(userID string) bson.M {
	if userID == "" {
		return bson.M{"user_id": bson.M{"$in": bson.A{"", nil}}}
	}
	return bson.M{"$or": bson.A{
		bson.M{"user_id": userID},
		bson.M{"user_id": bson.M{"$in": bson.A{"", nil}}},
	}}
}

func (r *notificationRepository) List(ctx context.Context, filter *notification.Filter) ([]*notification.Notification, error) {
	if filter == nil {
		filter = notification.NewFilter()
	}

	query := visibilityQuery(filter.UserID)
	if filter.Read != nil {
		query["read"] = *filter.Read
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.GetOffset())).
		SetLimit(int64(filter.GetLimit()))

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list notifications").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var notifications []*notification.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode notifications").
			Mark(ierr.ErrDatabase)
	}
	return notifications, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": n.ID}, n)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update notification").
			Mark(ierr.ErrDatabase)
	}
	if result.MatchedCount == 0 {
		return ierr.NewErrorf("notification not found: %s", n.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete notification").
			Mark(ierr.ErrDatabase)
	}
	if result.DeletedCount == 0 {
		return ierr.NewErrorf("notification not found: %s", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	query := visibilityQuery(userID)
	query["read"] = false

	result, err := r.collection().UpdateMany(ctx, query, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to mark notifications as read").
			Mark(ierr.ErrDatabase)
	}
	return int(result.ModifiedCount), nil
}
