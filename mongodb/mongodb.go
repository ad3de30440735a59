package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type Options struct {
	URI              string
	Database         string
	MoviesCollection string
	UsersCollection  string
}

// NewClient connects and pings, so a bad URI fails at startup rather than on
// the first request.
func NewClient(ctx context.Context, opts Options) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes that make username and email
// uniqueness a store guarantee. It is idempotent.
func EnsureIndexes(ctx context.Context, users *mongo.Collection) error {
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongodb: create user indexes: %w", err)
	}
	return nil
}

// MigrateScores converts rating and evaluate values stored as text into
// doubles. Unparsable text becomes 0.
func MigrateScores(ctx context.Context, movies *mongo.Collection) (int64, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "rating", Value: bson.D{{Key: "$type", Value: "string"}}}},
		bson.D{{Key: "evaluate", Value: bson.D{{Key: "$type", Value: "string"}}}},
	}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: toDouble("$rating")},
			{Key: "evaluate", Value: toDouble("$evaluate")},
		}}},
	}

	res, err := movies.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("mongodb: migrate scores: %w", err)
	}
	return res.ModifiedCount, nil
}

func toDouble(field string) bson.D {
	return bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$trim", Value: bson.D{{Key: "input", Value: bson.D{{Key: "$toString", Value: field}}}}}}},
		{Key: "to", Value: "double"},
		{Key: "onError", Value: 0.0},
		{Key: "onNull", Value: 0.0},
	}}}
}
