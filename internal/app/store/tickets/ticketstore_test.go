package ticketstore

import (
	"math"
	"testing"
	"time"

	"github.com/dalemusser/stratamember/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, size         int64
		wantPage, wantSize int64
	}{
		{0, 0, 1, DefaultPageSize},
		{-4, -1, 1, DefaultPageSize},
		{3, 50, 3, 50},
		{1, 5000, 1, MaxPageSize},
		{2, 1, 2, 1},
		{math.MaxInt64, 10, math.MaxInt64 / MaxPageSize, 10},
	}
	for _, tt := range tests {
		p, s := ClampPage(tt.page, tt.size)
		if p != tt.wantPage || s != tt.wantSize {
			t.Errorf("ClampPage(%d, %d) = %d, %d, want %d, %d", tt.page, tt.size, p, s, tt.wantPage, tt.wantSize)
		}
	}
}

func TestList_NewestFirstAndPaged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	docs := make([]any, 0, 5)
	for i := 0; i < 5; i++ {
		st := "open"
		if i == 4 {
			st = " Resolved "
		}
		docs = append(docs, bson.M{
			"subject":   "ticket",
			"status":    st,
			"createdAt": base.Add(time.Duration(i) * time.Hour),
		})
	}
	testutil.Seed(t, db, "tickets", docs...)

	store := New(db)

	first, err := store.List(ctx, 1, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(first) != 2 || !first[0].CreatedAt.Equal(base.Add(4*time.Hour)) {
		t.Fatalf("page 1 = %+v, want two newest", first)
	}
	if first[0].Status != "resolved" || !first[0].Done || first[1].Done {
		t.Errorf("page 1 status/done = %q %v, %v", first[0].Status, first[0].Done, first[1].Done)
	}

	last, err := store.List(ctx, 3, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(last) != 1 || !last[0].CreatedAt.Equal(base) {
		t.Errorf("page 3 = %+v, want the oldest only", last)
	}

	beyond, err := store.List(ctx, 9, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if beyond == nil || len(beyond) != 0 {
		t.Errorf("page 9 = %#v, want empty non-nil slice", beyond)
	}
}
