package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localboost/localboost-backend/internal/database"
)

const reportCollection = "reports"

// ArchiveReport stores a generated report document. Archival is best effort;
// the caller logs a failure and still returns the report.
func ArchiveReport(ctx context.Context, report Report) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := database.DB.Collection(reportCollection).InsertOne(ctx, report)
	return err
}

// RecentReports returns archived reports, newest first.
func RecentReports(ctx context.Context, limit int) ([]Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 50 {
		limit = 10
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"generated_at": -1})
	findOptions.SetLimit(int64(limit))

	cursor, err := database.DB.Collection(reportCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
