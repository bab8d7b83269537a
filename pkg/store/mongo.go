// Package store owns the MongoDB connection. A single *Store is created at
// startup and passed by reference to every repository; there is no
// module-level database handle.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. All documents live in one database.
const (
	ColParts    = "parts"
	ColUsers    = "users"
	ColReviews  = "reviews"
	ColOrders   = "orders"
	ColPayments = "payments"
	ColLogs     = "logs"
)

// Store wraps the Mongo client and the application database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the Mongo connection, verifies it with a ping, and ensures
// the unique index on users.email that the upsert keying relies on.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("store: ensure users.email index: %w", err)
	}

	_, err = s.Orders().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("store: ensure orders.email index: %w", err)
	}

	return nil
}

// Ping verifies the connection is still live.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Database exposes the raw database for callers that need it (log sink).
func (s *Store) Database() *mongo.Database { return s.db }

func (s *Store) Parts() *mongo.Collection    { return s.db.Collection(ColParts) }
func (s *Store) Users() *mongo.Collection    { return s.db.Collection(ColUsers) }
func (s *Store) Reviews() *mongo.Collection  { return s.db.Collection(ColReviews) }
func (s *Store) Orders() *mongo.Collection   { return s.db.Collection(ColOrders) }
func (s *Store) Payments() *mongo.Collection { return s.db.Collection(ColPayments) }
func (s *Store) Logs() *mongo.Collection     { return s.db.Collection(ColLogs) }
