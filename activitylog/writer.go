/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package activitylog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/suparena/tablestore/datastore"
)

const (
	instrumentationName = "github.com/suparena/tablestore/activitylog"
	writesCounterName   = "tablestore.activitylog.writes"

	outcomeWritten = "written"
	outcomeFailed  = "failed"
)

// Store is the table the writer persists to.
type Store = datastore.Table[Entity, *Entity]

// Writer records activities. It is safe for concurrent use.
type Writer struct {
	table   Store
	logger  *zap.Logger
	meter   metric.Meter
	writes  metric.Int64Counter
	catalog Catalog
	now     func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used for discarded write failures.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithMeter sets the meter the write counter is registered with.
// The global meter provider is used otherwise.
func WithMeter(meter metric.Meter) Option {
	return func(w *Writer) {
		if meter != nil {
			w.meter = meter
		}
	}
}

// WithCatalog replaces the built-in message formats.
func WithCatalog(c Catalog) Option {
	return func(w *Writer) {
		if c != nil {
			w.catalog = c
		}
	}
}

// WithClock sets the time source for row keys and CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter creates a Writer over table.
func NewWriter(table Store, opts ...Option) (*Writer, error) {
	w := &Writer{
		table:   table,
		logger:  zap.NewNop(),
		meter:   otel.Meter(instrumentationName),
		catalog: DefaultCatalog(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(w)
	}

	var err error
	if w.writes, err = w.meter.Int64Counter(
		writesCounterName,
		metric.WithDescription("The number of activity log copies written, by category and outcome"),
	); err != nil {
		return nil, fmt.Errorf("failed to create %s instrument: %w", writesCounterName, err)
	}
	return w, nil
}

// Outcome is the result of writing one copy of an activity.
type Outcome struct {
	Category     Category
	PartitionKey string
	Err          error
}

// Result reports every copy LogActivity attempted.
type Result struct {
	ActivityID string
	Outcomes   []Outcome
}

// Written returns the number of copies that were stored.
func (r Result) Written() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Err combines the failures of every attempted copy, or returns nil.
func (r Result) Err() error {
	var err error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s copy %q: %w", o.Category, o.PartitionKey, o.Err))
		}
	}
	return err
}

// LogActivity writes entity to the actor's partition (when UserID is set)
// and to the hackathon's partition (when HackathonName is set).
//
// The caller's RowKey and CreatedAt are overwritten, and Message is rendered
// from the message catalog when it is empty. Write failures never surface as
// an error: they are logged, counted and reported in the Result, and the
// other copy is still attempted.
func (w *Writer) LogActivity(ctx context.Context, entity *Entity) Result {
	if entity == nil || entity.ActivityType == "" {
		return Result{}
	}

	now := w.now()
	entity.RowKey = InversedTimeKey(now) + "-" + uuid.NewString()[:8]
	entity.CreatedAt = now
	w.render(entity)

	res := Result{ActivityID: entity.ActivityID()}
	if entity.UserID != "" {
		res.Outcomes = append(res.Outcomes, w.save(ctx, entity, entity.UserID, CategoryUser))
	}
	if entity.HackathonName != "" {
		res.Outcomes = append(res.Outcomes, w.save(ctx, entity, entity.HackathonName, CategoryHackathon))
	}
	return res
}

func (w *Writer) render(entity *Entity) {
	if entity.MessageFormat == "" {
		entity.MessageFormat = w.catalog.Format(entity.ActivityType)
	}
	if entity.Message == "" {
		entity.Message = Render(entity.MessageFormat, entity.Args)
	}
}

func (w *Writer) save(ctx context.Context, entity *Entity, partitionKey string, category Category) Outcome {
	clone := entity.Clone()
	clone.PartitionKey = partitionKey
	clone.Category = category

	err := w.table.Insert(ctx, clone)
	outcome := outcomeWritten
	if err != nil {
		outcome = outcomeFailed
		w.logger.Warn("activity log write discarded",
			zap.String("activityType", string(entity.ActivityType)),
			zap.String("category", string(category)),
			zap.String("partitionKey", partitionKey),
			zap.String("rowKey", clone.RowKey),
			zap.Error(err))
	}
	w.writes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", string(category)),
		attribute.String("outcome", outcome),
	))
	return Outcome{Category: category, PartitionKey: partitionKey, Err: err}
}
