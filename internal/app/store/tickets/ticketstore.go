// internal/app/store/tickets/ticketstore.go
package ticketstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/stratamember/internal/app/store/storeutil"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/app/system/status"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Page size limits for the ticket listing.
const (
	DefaultPageSize = 500
	MaxPageSize     = 1000
)

// Store reads member support tickets.
type Store struct {
	c *mongo.Collection
}

// New creates a new ticket Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tickets")}
}

// ClampPage applies the listing's page and page size limits.
func ClampPage(page, pageSize int64) (int64, int64) {
	return storeutil.ClampPage(page, pageSize, DefaultPageSize, MaxPageSize)
}

// List returns one page of tickets, newest first.
func (s *Store) List(ctx context.Context, page, pageSize int64) ([]models.Ticket, error) {
	page, pageSize = ClampPage(page, pageSize)

	opts := storeutil.Paginate(pageSize, page).
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.Ticket, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	for i := range out {
		out[i].Status = normalize.Status(out[i].Status)
		out[i].Done = status.IsTicketDone(out[i].Status)
	}
	return out, nil
}
