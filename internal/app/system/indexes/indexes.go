// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Set is the desired indexes of one collection.
type Set struct {
	Collection string
	Models     []mongo.IndexModel
}

/*
EnsureAll is called at startup. Each set is reconciled idempotently.
We aggregate errors so any problem is visible and startup can fail fast.
The service only reads these collections; the indexes serve the summary
aggregations and the ticket listing.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	var problems []string
	for _, set := range Sets() {
		if err := ensureIndexSet(ctx, db.Collection(set.Collection), set.Models, logger); err != nil {
			problems = append(problems, set.Collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	return (a != nil && *a) == (b != nil && *b)
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listIndexes(ctx context.Context, coll *mongo.Collection, logger *zap.Logger) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			logger.Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	var errs []string
	existing := listIndexes(ctx, coll, logger)

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				logger.Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil {
			level := "index ensure failed"
			if isOptionsConflictErr(err) {
				level = "index ensure failed (options conflict)"
			}
			logger.Warn(level,
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		logger.Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", created),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func idx(name string, keys ...bson.E) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D(keys), Options: options.Index().SetName(name)}
}

func asc(field string) bson.E  { return bson.E{Key: field, Value: 1} }
func desc(field string) bson.E { return bson.E{Key: field, Value: -1} }

// Sets lists the desired index sets, one per collection.
func Sets() []Set {
	settingsKey := idx("uniq_app_settings_key", asc("key"))
	settingsKey.Options.SetUnique(true)

	return []Set{
		{"members", []mongo.IndexModel{
			// Status counts and joiner windows
			idx("idx_members_status_createdat", asc("status"), asc("createdAt")),
			// Per-company breakdown
			idx("idx_members_company_status", asc("company"), asc("status")),
			idx("idx_members_createdat", asc("createdAt")),
		}},
		{"payments", []mongo.IndexModel{
			idx("idx_payments_paidat", asc("paidAt")),
			idx("idx_payments_company_paidat", asc("company"), asc("paidAt")),
		}},
		{"dues_ledger", []mongo.IndexModel{
			idx("idx_dues_ledger_period", asc("period")),
			idx("idx_dues_ledger_company_period", asc("company"), asc("period")),
		}},
		{"tickets", []mongo.IndexModel{
			// Listing: newest first with a stable tiebreak
			idx("idx_tickets_createdat_id", desc("createdAt"), desc("_id")),
			idx("idx_tickets_status", asc("status")),
		}},
		{"events", []mongo.IndexModel{
			idx("idx_events_status_startsat", asc("status"), asc("startsAt")),
		}},
		{"benefits", []mongo.IndexModel{
			idx("idx_benefits_status", asc("status")),
			idx("idx_benefits_type", asc("type")),
		}},
		{"registrations", []mongo.IndexModel{
			idx("idx_registrations_createdat", asc("createdAt")),
			idx("idx_registrations_status", asc("status")),
		}},
		{"app_settings", []mongo.IndexModel{settingsKey}},
	}
}
