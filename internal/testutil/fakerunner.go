package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/stratamember/internal/app/system/safequery"
	"go.mongodb.org/mongo-driver/bson"
)

// FakeRunner is an in-memory safequery.Runner keyed by Query.Name.
// Rows are given as bson.M and round-tripped through BSON so that decoding
// behaves as it does against MongoDB.
type FakeRunner struct {
	Data    map[string][]bson.M
	Errs    map[string]error
	Delays  map[string]time.Duration
	Panics  map[string]bool
	PingErr error

	mu    sync.Mutex
	calls []string
}

// NewFakeRunner returns a FakeRunner with no data; every query returns zero rows.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Data:   make(map[string][]bson.M),
		Errs:   make(map[string]error),
		Delays: make(map[string]time.Duration),
		Panics: make(map[string]bool),
	}
}

// Rows implements safequery.Runner.
func (f *FakeRunner) Rows(ctx context.Context, q safequery.Query, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, q.Name)
	f.mu.Unlock()

	if f.Panics[q.Name] {
		panic(fmt.Sprintf("fake runner panic in %s", q.Name))
	}
	if d := f.Delays[q.Name]; d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	if err := f.Errs[q.Name]; err != nil {
		return err
	}

	if err := safequery.ResetTarget(out); err != nil {
		return err
	}
	for _, row := range f.Data[q.Name] {
		raw, err := bson.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal fake row: %w", err)
		}
		if err := safequery.AppendDecoded(out, raw); err != nil {
			return err
		}
	}
	return nil
}

// Ping implements safequery.Runner.
func (f *FakeRunner) Ping(context.Context) error {
	return f.PingErr
}

// Calls returns the query names run so far, in call order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
