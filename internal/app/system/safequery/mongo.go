package safequery

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRunner runs queries against a MongoDB database.
type MongoRunner struct {
	db *mongo.Database
}

// NewMongoRunner creates a MongoRunner.
func NewMongoRunner(db *mongo.Database) *MongoRunner {
	return &MongoRunner{db: db}
}

// Rows runs q and decodes every result document into out.
func (m *MongoRunner) Rows(ctx context.Context, q Query, out any) error {
	if err := ResetTarget(out); err != nil {
		return err
	}

	if q.IsCommand() {
		raw, err := m.db.RunCommand(ctx, q.Command).Raw()
		if err != nil {
			return fmt.Errorf("%s: run command: %w", q.Name, err)
		}
		return AppendDecoded(out, raw)
	}

	cur, err := m.db.Collection(q.Collection).Aggregate(ctx, q.Pipeline)
	if err != nil {
		return fmt.Errorf("%s: aggregate %s: %w", q.Name, q.Collection, err)
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("%s: decode %s: %w", q.Name, q.Collection, err)
	}
	return nil
}

// Ping checks that the primary is reachable.
func (m *MongoRunner) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, readpref.Primary())
}
