package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseboard/pulseboard/internal/domain/user"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
	db "github.com/pulseboard/pulseboard/internal/mongo"
	"github.com/pulseboard/pulseboard/internal/types"
)

type userRepository struct {
	client *db.Client
	log    *logger.Logger
}

// NewUserRepository creates a MongoDB-backed user repository
func NewUserRepository(client *db.Client, log *logger.Logger) user.Repository {
	return &userRepository{client: client, log: log}
}

func (r *userRepository) collection() *mongo.Collection {
	return r.client.Collection(db.CollectionUsers)
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	r.log.Debugw("creating user", "user_id", u.ID, "email", u.Email)

	if _, err := r.collection().InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHint("A user with this email already exists").
				WithReportableDetails(map[string]interface{}{
					"email": u.Email,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.WithError(err).
				WithHintf("User not found: %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.WithError(err).
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user by email").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, filter *user.Filter) ([]*user.User, error) {
	if filter == nil {
		filter = user.NewFilter()
	}

	order := 1
	if filter.GetOrder() == types.SortOrderDesc {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.GetSort("name"), Value: order}}).
		SetSkip(int64(filter.GetOffset())).
		SetLimit(int64(filter.GetLimit()))

	cursor, err := r.collection().Find(ctx, r.buildQuery(filter), opts)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var users []*user.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode users").
			Mark(ierr.ErrDatabase)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter *user.Filter) (int, error) {
	if filter == nil {
		filter = user.NewFilter()
	}
	count, err := r.collection().CountDocuments(ctx, r.buildQuery(filter))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count users").
			Mark(ierr.ErrDatabase)
	}
	return int(count), nil
}

func (r *userRepository) buildQuery(filter *user.Filter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		}
	}
	if filter.Status != "" && filter.Status != "all" {
		query["status"] = filter.Status
	}
	return query
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHint("A user with this email already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update user").
			Mark(ierr.ErrDatabase)
	}
	if result.MatchedCount == 0 {
		return ierr.NewErrorf("user not found: %s", u.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete user").
			Mark(ierr.ErrDatabase)
	}
	if result.DeletedCount == 0 {
		return ierr.NewErrorf("user not found: %s", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
