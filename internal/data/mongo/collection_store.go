package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/supplier-ledger/internal/domain/collection"
	"github.com/supplier-ledger/internal/domain/shared"
)

const (
	// DefaultCollectionsName is the MongoDB collection holding one document per mirrored collection
	DefaultCollectionsName = "collections"

	itemsField = "items"
)

// collectionDocument is the stored shape: {_id: "suppliers", items: [...], updated_at}
type collectionDocument struct {
	Name      string        `bson:"_id"`
	Items     bson.RawValue `bson:"items"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// CollectionStore implements collection.Store on MongoDB
type CollectionStore struct {
	coll     *mongo.Collection
	registry *bsoncodec.Registry
	clock    shared.Clock
	logger   *slog.Logger
}

// NewCollectionStore creates a store over db.collectionName.
// registry must carry the decimal codec; items are encoded and decoded with it.
func NewCollectionStore(logger *slog.Logger, db *mongo.Database, collectionName string, registry *bsoncodec.Registry, clock shared.Clock) *CollectionStore {
	if collectionName == "" {
		collectionName = DefaultCollectionsName
	}
	return &CollectionStore{
		coll:     db.Collection(collectionName),
		registry: registry,
		clock:    clock,
		logger:   logger,
	}
}

var _ collection.Store = (*CollectionStore)(nil)

// Load decodes the items of the named document into dst.
// A missing document, or one without items, reports found == false.
func (s *CollectionStore) Load(ctx context.Context, name collection.Name, dst any) (bool, error) {
	raw, err := s.coll.FindOne(ctx, bson.M{"_id": string(name)}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		s.logger.Error("Failed to load collection", "collection", name, "error", err)
		return false, shared.ErrStorage{Collection: string(name), Op: "load", Err: err}
	}

	items, err := raw.LookupErr(itemsField)
	if err != nil || items.Type == bsontype.Null {
		return false, nil
	}

	if err := items.UnmarshalWithRegistry(s.registry, dst); err != nil {
		s.logger.Error("Failed to decode collection", "collection", name, "error", err)
		return false, shared.ErrStorage{Collection: string(name), Op: "load", Err: fmt.Errorf("failed to decode items: %w", err)}
	}

	return true, nil
}

// Save replaces the named document, creating it on first save
func (s *CollectionStore) Save(ctx context.Context, name collection.Name, items any) error {
	t, data, err := bson.MarshalValueWithRegistry(s.registry, items)
	if err != nil {
		return shared.ErrStorage{Collection: string(name), Op: "save", Err: fmt.Errorf("failed to encode items: %w", err)}
	}

	doc := collectionDocument{
		Name:      string(name),
		Items:     bson.RawValue{Type: t, Value: data},
		UpdatedAt: s.clock.Now(),
	}

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": string(name)}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		s.logger.Error("Failed to save collection", "collection", name, "error", err)
		return shared.ErrStorage{Collection: string(name), Op: "save", Err: err}
	}

	return nil
}
