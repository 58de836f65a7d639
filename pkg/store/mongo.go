package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jselig/mentionet/pkg/errors"
	"github.com/jselig/mentionet/pkg/tweet"
)

// connectTimeout bounds the initial connection and ping.
const connectTimeout = 10 * time.Second

// MongoStore is a TweetStore backed by a MongoDB collection.
// Documents use the tweet id as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB at uri and returns a store over
// database/collection. The connection is verified with a ping before the
// store is returned.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongodb uri is not set")
	}
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// FindAll returns every stored tweet ordered by id.
func (s *MongoStore) FindAll(ctx context.Context) ([]tweet.Tweet, error) {
	cursor, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "query tweets")
	}
	defer cursor.Close(ctx)

	var tweets []tweet.Tweet
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode tweets")
	}
	return tweets, nil
}

// Upsert stores each tweet with its id as _id, using $set so partial
// documents from older fetches gain fields rather than losing them.
func (s *MongoStore) Upsert(ctx context.Context, tweets []tweet.Tweet) (UpsertStats, error) {
	var stats UpsertStats
	for _, t := range tweets {
		if t.ID == "" {
			continue
		}
		res, err := s.coll.UpdateOne(ctx,
			bson.M{"_id": t.ID},
			bson.M{"$set": t},
			options.Update().SetUpsert(true))
		if err != nil {
			return stats, errors.Wrap(errors.ErrCodeStore, err, "upsert tweet %s", t.ID)
		}
		if res.UpsertedCount > 0 {
			stats.Inserted++
		} else {
			stats.Updated++
		}
	}
	return stats, nil
}

// Count returns the number of stored tweets.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeStore, err, "count tweets")
	}
	return n, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements TweetStore.
var _ TweetStore = (*MongoStore)(nil)
