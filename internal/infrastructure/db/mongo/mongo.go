package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names follow the pluralised model names already present in
// existing deployments.
const (
	collectionUsers         = "users"
	collectionMarketData    = "marketdatas"
	collectionRoutes        = "shippingroutes"
	collectionDocuments     = "customsdocuments"
	collectionRates         = "currencyexchangerates"
	collectionOpportunities = "marketopportunities"
	collectionActivities    = "activitylogs"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the unique account keys and the owner/time indexes
// backing the list queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	byOwner := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}}

	indexes := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionMarketData: {
			{Keys: bson.D{{Key: "productName", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		collectionRoutes:    {byOwner},
		collectionDocuments: {byOwner, {Keys: bson.D{{Key: "status", Value: 1}}}},
		collectionActivities: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// objectID parses a hex identifier. Malformed ids are reported as absent so
// callers can answer with their not-found error.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// hexOrEmpty renders an optional reference.
func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

// findByID decodes the document with the given id into D.
func findByID[D any](ctx context.Context, col *mongo.Collection, id string, notFound error) (*D, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, notFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc D
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	return &doc, nil
}

// findMany decodes every document matching filter, sorted by sortField
// descending. limit <= 0 means no limit.
func findMany[D any](ctx context.Context, col *mongo.Collection, filter any, sortField string, limit int) ([]D, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", col.Name(), err)
	}
	docs := make([]D, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return docs, nil
}

// updateByID applies set to the document and returns the stored result. An
// empty set only reloads the document.
func updateByID[D any](ctx context.Context, col *mongo.Collection, id string, set bson.M, notFound error) (*D, error) {
	if len(set) == 0 {
		return findByID[D](ctx, col, id, notFound)
	}
	oid, ok := objectID(id)
	if !ok {
		return nil, notFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc D
	err := col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, err
	}
	return &doc, nil
}

// insert stores doc and returns the generated id.
func insert(ctx context.Context, col *mongo.Collection, doc any) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert %s: unexpected id type %T", col.Name(), res.InsertedID)
	}
	return oid, nil
}

func count(ctx context.Context, col *mongo.Collection, filter any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}
	return n, nil
}

// setter accumulates the $set document of a partial update.
type setter bson.M

func put[T any](s setter, field string, v *T) {
	if v != nil {
		s[field] = *v
	}
}
