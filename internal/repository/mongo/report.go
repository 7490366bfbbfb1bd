package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseboard/pulseboard/internal/cache"
	"github.com/pulseboard/pulseboard/internal/domain/report"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
	db "github.com/pulseboard/pulseboard/internal/mongo"
	"github.com/pulseboard/pulseboard/internal/types"
)

const reportCacheTTL = 5 * time.Minute

type reportRepository struct {
	client *db.Client
	log    *logger.Logger
	cache  cache.Cache
}

// NewReportRepository creates a MongoDB-backed report repository with a
// read-through cache on Get.
func NewReportRepository(client *db.Client, log *logger.Logger, c cache.Cache) report.Repository {
	return &reportRepository{client: client, log: log, cache: c}
}

func (r *reportRepository) collection() *mongo.Collection {
	return r.client.Collection(db.CollectionReports)
}

func (r *reportRepository) Create(ctx context.Context, rep *report.Report) error {
	r.log.Debugw("creating report", "report_id", rep.ID, "user_id", rep.UserID, "type", rep.Type)

	if _, err := r.collection().InsertOne(ctx, rep); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create report").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id string) (*report.Report, error) {
	key := cache.GenerateKey(cache.PrefixReport, id)
	if cached, found := cache.Value[*report.Report](ctx, r.cache, key); found {
		return cached, nil
	}

	var rep report.Report
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&rep)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.WithError(err).
				WithHintf("Report not found: %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get report").
			Mark(ierr.ErrDatabase)
	}

	// Reports still generating change shortly; caching them would serve a
	// stale status to pollers.
	if rep.Status.IsTerminal() {
		r.cache.Set(ctx, key, &rep, reportCacheTTL)
	}
	return &rep, nil
}

func (r *reportRepository) List(ctx context.Context, filter *report.Filter) ([]*report.Report, error) {
	if filter == nil {
		filter = report.NewFilter()
	}

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.ScheduledOnly {
		query["scheduled.enabled"] = true
	}

	order := -1
	if filter.GetOrder() == types.SortOrderAsc && filter.Sort != nil {
		order = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.GetSort("created_at"), Value: order}}).
		SetSkip(int64(filter.GetOffset())).
		SetLimit(int64(filter.GetLimit()))

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list reports").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var reports []*report.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode reports").
			Mark(ierr.ErrDatabase)
	}
	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, rep *report.Report) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": rep.ID}, rep)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update report").
			Mark(ierr.ErrDatabase)
	}
	if result.MatchedCount == 0 {
		return ierr.NewErrorf("report not found: %s", rep.ID).
			Mark(ierr.ErrNotFound)
	}
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixReport, rep.ID))
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete report").
			Mark(ierr.ErrDatabase)
	}
	if result.DeletedCount == 0 {
		return ierr.NewErrorf("report not found: %s", id).
			Mark(ierr.ErrNotFound)
	}
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixReport, id))
	return nil
}

func (r *reportRepository) ListDueScheduled(ctx context.Context, now time.Time) ([]*report.Report, error) {
	query := bson.M{
		"scheduled.enabled":  true,
		"scheduled.next_run": bson.M{"$lte": now},
	}

	cursor, err := r.collection().Find(ctx, query)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list due scheduled reports").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var reports []*report.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode scheduled reports").
			Mark(ierr.ErrDatabase)
	}
	return reports, nil
}
