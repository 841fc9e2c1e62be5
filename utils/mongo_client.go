package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the process-lifetime MongoDB client. It is created at
// most once; every caller shares the same connection pool.
var MongoClient *mongo.Client

var (
	mongoInitMu   sync.Mutex
	mongoInitDone bool
)

// InitMongoClient connects to MongoDB and stores the client in
// MongoClient. Calling it again after a successful init is a no-op, so
// startup paths and tests may both call it safely.
func InitMongoClient(uri string, maxPool, minPool uint64, maxIdle time.Duration) error {
	mongoInitMu.Lock()
	defer mongoInitMu.Unlock()

	if mongoInitDone {
		return nil
	}

	if uri == "" {
		return fmt.Errorf("mongodb URI is not set")
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPool).
		SetMinPoolSize(minPool).
		SetMaxConnIdleTime(maxIdle)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	mongoInitDone = true
	return nil
}

// CloseMongoClient disconnects the shared client. Used on shutdown and
// by tests that own their process lifetime.
func CloseMongoClient() error {
	mongoInitMu.Lock()
	defer mongoInitMu.Unlock()

	if !mongoInitDone {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := MongoClient.Disconnect(ctx)
	MongoClient = nil
	mongoInitDone = false
	return err
}
