package safequery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/stratamember/internal/app/system/reportmetrics"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Executor runs queries through a Runner with a per-query deadline.
type Executor struct {
	runner  Runner
	logger  *zap.Logger
	timeout time.Duration
	metrics *reportmetrics.Metrics
}

// NewExecutor creates an Executor. A non-positive timeout disables the
// per-query deadline; metrics may be nil.
func NewExecutor(runner Runner, logger *zap.Logger, timeout time.Duration, metrics *reportmetrics.Metrics) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		runner:  runner,
		logger:  logger,
		timeout: timeout,
		metrics: metrics,
	}
}

// Runner returns the underlying runner.
func (e *Executor) Runner() Runner { return e.runner }

// Run executes q and returns its rows. On any failure (runner error,
// deadline, decode error or a panic inside the runner) it logs a warning,
// records the failure in trail under label and returns fallback.
func Run[T any](ctx context.Context, e *Executor, trail *Trail, label string, q Query, fallback []T) []T {
	start := time.Now()

	qctx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var rows []T
	err := e.rows(qctx, q, &rows)
	elapsed := time.Since(start)

	if err != nil {
		status := models.SourceFailed
		if isTimeout(qctx, err) {
			status = models.SourceTimeout
		}
		e.logger.Warn("summary source failed, using fallback",
			zap.String("source", label),
			zap.String("query", q.Name),
			zap.String("status", status),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		e.metrics.IncFallback(label)
		e.metrics.ObserveQuery(label, status, elapsed)
		trail.Record(label, models.SourceReport{
			Status:     status,
			Error:      err.Error(),
			DurationMs: elapsed.Milliseconds(),
		})
		return fallback
	}

	status := models.SourceOK
	if len(rows) == 0 {
		status = models.SourceNoRows
	}
	e.metrics.ObserveQuery(label, status, elapsed)
	trail.Record(label, models.SourceReport{
		Status:     status,
		Rows:       len(rows),
		DurationMs: elapsed.Milliseconds(),
	})
	return rows
}

func (e *Executor) rows(ctx context.Context, q Query, out any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: runner panic: %v", q.Name, r)
		}
	}()
	if e.runner == nil {
		return errors.New("no store configured")
	}
	if err := e.runner.Rows(ctx, q, out); err != nil {
		return err
	}
	// Rows that arrive after the deadline are discarded.
	return ctx.Err()
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return true
	}
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// First returns the first row, or def when rows is empty. Single-row
// aggregates use it with an all-zero default record.
func First[T any](rows []T, def T) T {
	if len(rows) == 0 {
		return def
	}
	return rows[0]
}
