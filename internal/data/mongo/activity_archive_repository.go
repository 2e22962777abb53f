package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/supplier-ledger/internal/domain/activity"
)

const (
	// ActivityArchiveCollectionName is the default archive collection
	ActivityArchiveCollectionName = "activity_archive"
)

// ActivityArchiveRepository implements activity.ArchiveRepository for MongoDB
type ActivityArchiveRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewActivityArchiveRepository creates a new MongoDB activity archive
func NewActivityArchiveRepository(logger *slog.Logger, db *mongo.Database, collectionName string) activity.ArchiveRepository {
	if collectionName == "" {
		collectionName = ActivityArchiveCollectionName
	}
	return &ActivityArchiveRepository{
		coll:   db.Collection(collectionName),
		logger: logger,
	}
}

// Upsert stores the entry under its id, so redelivered events overwrite themselves
func (r *ActivityArchiveRepository) Upsert(ctx context.Context, entry *activity.Entry) error {
	if entry == nil || entry.ID == "" {
		return errors.New("activity entry id cannot be empty")
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		r.logger.Error("Failed to archive activity entry",
			"entry_id", entry.ID,
			"error", err)
		return fmt.Errorf("failed to archive activity entry: %w", err)
	}

	return nil
}

// List retrieves archived entries, newest first
func (r *ActivityArchiveRepository) List(ctx context.Context, limit, offset int) ([]*activity.Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list archived activity", "error", err)
		return nil, fmt.Errorf("failed to list archived activity: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]*activity.Entry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode archived activity", "error", err)
		return nil, fmt.Errorf("failed to decode archived activity: %w", err)
	}

	return entries, nil
}

// Count returns the number of archived entries
func (r *ActivityArchiveRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to count archived activity", "error", err)
		return 0, fmt.Errorf("failed to count archived activity: %w", err)
	}
	return count, nil
}
