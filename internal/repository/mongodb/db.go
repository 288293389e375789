// Package mongodb implements the domain repositories on top of MongoDB.
//
// Domain entities carry hex string IDs; each repository converts to and from
// primitive.ObjectID at this boundary. A malformed hex ID can never match a
// stored document, so it is reported as domain.ErrNotFound rather than an
// input error.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventhorizon/internal/domain"
)

// Collection names.
const (
	colUsers    = "users"
	colEvents   = "events"
	colLectures = "lectures"
	colRatings  = "ratings"
)

// Connect opens a client, pings the deployment, and returns the client along
// with a handle to the named database. The caller owns the client and must
// disconnect it on shutdown.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the repositories rely on: unique user
// email, unique event name, a unique (target, user) pair for ratings, and a
// lookup index on lecture event references for the sum aggregation.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection(colUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	if _, err := db.Collection(colEvents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("events name index: %w", err)
	}

	if _, err := db.Collection(colLectures).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("lectures event_id index: %w", err)
	}

	if _, err := db.Collection(colRatings).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "target_kind", Value: 1},
			{Key: "target_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("ratings target/user index: %w", err)
	}

	return nil
}

// oidFromHex converts a domain ID to an ObjectID. Malformed IDs map to
// ErrNotFound: no stored document can have that ID.
func oidFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}
