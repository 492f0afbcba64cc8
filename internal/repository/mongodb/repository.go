package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appleprotools/resale/internal/domain/models"
)

// ReportArchive stores end-of-day digests.
type ReportArchive interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

var _ ReportArchive = (*MongoDBRepository)(nil)

// MongoDBRepository implements ReportArchive for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects and pings the server before returning.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "daily_reports",
	}, nil
}

// SaveDailyReport upserts the report of its calendar day, so a rerun of the
// nightly job replaces the earlier snapshot.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	if _, err := collection.ReplaceOne(ctx, reportFilter(report), report, upsertByDate()); err != nil {
		return fmt.Errorf("failed to upsert daily report: %w", err)
	}
	return nil
}

// reportFilter selects the stored digest of the report's calendar day.
func reportFilter(report models.DailyReport) bson.M {
	return bson.M{"date": report.Date}
}

func upsertByDate() *options.ReplaceOptions {
	return options.Replace().SetUpsert(true)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
