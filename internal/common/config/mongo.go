package config

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoConfig struct {
	// Connection string, e.g. mongodb://localhost:27017/
	Uri        string `validate:"required"`
	Database   string `validate:"required"`
	Collection string `validate:"required"`
	// Zero leaves the driver defaults in place
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	MaxPoolSize            uint64
	// Whether to create the timestamp index on startup
	CreateIndexes bool
}

func (mc MongoConfig) AsClientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(mc.Uri)
	if mc.ConnectTimeout > 0 {
		opts.SetConnectTimeout(mc.ConnectTimeout)
	}
	if mc.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(mc.ServerSelectionTimeout)
	}
	if mc.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(mc.MaxPoolSize)
	}
	return opts
}
