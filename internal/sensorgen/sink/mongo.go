package sink

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/armadaproject/sensorgen/internal/common/config"
	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

const (
	MongoSinkName      = "mongo"
	timestampIndexName = "timestamp_-1"
)

// MongoSink writes each record as one document of a MongoDB collection.
type MongoSink struct {
	collection *mongo.Collection
}

func NewMongoSink(collection *mongo.Collection) *MongoSink {
	return &MongoSink{collection: collection}
}

// DialMongo connects to MongoDB and returns a sink for the configured collection.
func DialMongo(ctx context.Context, cfg config.MongoConfig) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, cfg.AsClientOptions())
	if err != nil {
		return nil, errors.WithMessagef(err, "error connecting to mongo database %s", cfg.Database)
	}
	s := NewMongoSink(client.Database(cfg.Database).Collection(cfg.Collection))
	if cfg.CreateIndexes {
		if err := s.EnsureIndexes(ctx); err != nil {
			if disconnectErr := client.Disconnect(ctx); disconnectErr != nil {
				log.WithError(disconnectErr).Warn("Mongo client didn't close down cleanly")
			}
			return nil, err
		}
	}
	return s, nil
}

func (s *MongoSink) Name() string {
	return MongoSinkName
}

func (s *MongoSink) InsertMany(ctx context.Context, records []model.SensorRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(records))
	for i, record := range records {
		docs[i] = record
	}
	result, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return 0, newError(s.Name(), len(records), err)
	}
	return len(result.InsertedIDs), nil
}

// EnsureIndexes creates the descending timestamp index that readers use for range queries.
func (s *MongoSink) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName(timestampIndexName),
	})
	if err != nil {
		return errors.WithMessagef(err, "error creating index on %s", s.collection.Name())
	}
	return nil
}

func (s *MongoSink) Ping(ctx context.Context) error {
	return s.collection.Database().Client().Ping(ctx, readpref.Primary())
}

func (s *MongoSink) Close(ctx context.Context) error {
	return s.collection.Database().Client().Disconnect(ctx)
}
