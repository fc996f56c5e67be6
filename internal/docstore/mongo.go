package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the production Store backed by MongoDB. Collections are
// schemaless; equality filters and single-field sorts map directly onto
// Find options. Sorts that the server cannot satisfy from an index are
// surfaced as MissingIndexError so the catalog planner can fall back to
// its in-memory path.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB and verifies the connection
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to reach document store: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// Close disconnects from the store
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Get loads the document with the given id into dest
func (s *MongoStore) Get(ctx context.Context, collection, id string, dest any) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return nil
}

// Put creates or wholesale-replaces the document with the given id
func (s *MongoStore) Put(ctx context.Context, collection, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update applies a partial patch of dotted field paths. Increment values
// become $inc operations, applied atomically by the server.
func (s *MongoStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	set := bson.M{}
	inc := bson.M{}
	for path, value := range patch {
		if i, ok := value.(Increment); ok {
			inc[path] = i.By
			continue
		}
		set[path] = value
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if len(update) == 0 {
		return nil
	}

	result, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the document; absent documents are a no-op
func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Query runs an equality-filtered, optionally ordered read into dest
func (s *MongoStore) Query(ctx context.Context, collection string, q Query, dest any) error {
	filter := bson.M{}
	for _, f := range q.Filters {
		filter[f.Field] = f.Value
	}

	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return s.classifyQueryErr(collection, err)
	}
	if err := cursor.All(ctx, dest); err != nil {
		return s.classifyQueryErr(collection, err)
	}
	return nil
}

// Count returns the number of documents matching the filters
func (s *MongoStore) Count(ctx context.Context, collection string, filters []Filter) (int, error) {
	filter := bson.M{}
	for _, f := range filters {
		filter[f.Field] = f.Value
	}
	n, err := s.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return int(n), nil
}

// classifyQueryErr maps the server's "cannot sort without an index" class
// of rejections onto MissingIndexError; everything else surfaces unchanged
// as an infrastructure error.
func (s *MongoStore) classifyQueryErr(collection string, err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 292: QueryExceededMemoryLimitNoDiskUseAllowed, the server refusing
		// an unindexed in-memory sort over a filtered set.
		if cmdErr.Code == 292 || strings.Contains(strings.ToLower(cmdErr.Message), "index") {
			return &MissingIndexError{Collection: collection, Detail: cmdErr.Message}
		}
	}
	return fmt.Errorf("failed to query %s: %w", collection, err)
}
