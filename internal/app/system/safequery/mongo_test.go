package safequery_test

import (
	"testing"

	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/app/system/safequery"
	"github.com/dalemusser/stratamember/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoRunner_AggregateAndCommand(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	testutil.Seed(t, db, "members",
		bson.M{"status": "approved"},
		bson.M{"status": "approved"},
		bson.M{"status": "pending"},
	)

	runner := safequery.NewMongoRunner(db)
	if err := runner.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	type statusRow struct {
		Status string        `bson:"_id"`
		N      normalize.Num `bson:"n"`
	}
	var rows []statusRow
	err := runner.Rows(ctx, safequery.Query{
		Name:       "byStatus",
		Collection: "members",
		Pipeline: []bson.M{
			{"$group": bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}},
			{"$sort": bson.M{"_id": 1}},
		},
	}, &rows)
	if err != nil {
		t.Fatalf("Rows(aggregate) error = %v", err)
	}
	if len(rows) != 2 || rows[0].Status != "approved" || rows[0].N != 2 {
		t.Errorf("rows = %+v", rows)
	}

	type statsRow struct {
		Objects normalize.Num `bson:"objects"`
	}
	var stats []statsRow
	err = runner.Rows(ctx, safequery.Query{Name: "dbStats", Command: bson.D{{Key: "dbStats", Value: 1}}}, &stats)
	if err != nil {
		t.Fatalf("Rows(command) error = %v", err)
	}
	if len(stats) != 1 || stats[0].Objects < 3 {
		t.Errorf("stats = %+v, want one row with >= 3 objects", stats)
	}
}
