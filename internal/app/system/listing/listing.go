// Package listing implements the fetch-and-normalize pattern shared by the
// collection stores: acquire a database handle, run one unfiltered Find,
// convert each document into a typed record, and return the ordered slice.
//
// What happens on failure is an explicit per-lister OnFailure policy rather
// than something each store decides ad hoc.
package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// OnFailure selects what List does after logging a failure.
type OnFailure int

const (
	// Swallow returns an empty result and no error. Callers cannot tell a
	// failure from an empty collection.
	Swallow OnFailure = iota
	// Propagate returns the error to the caller.
	Propagate
)

func (p OnFailure) String() string {
	switch p {
	case Swallow:
		return "swallow"
	case Propagate:
		return "propagate"
	default:
		return fmt.Sprintf("OnFailure(%d)", int(p))
	}
}

// QueryError reports a failure after a handle was acquired.
type QueryError struct {
	Collection string
	Op         string // "find", "decode" or "convert"
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Collection, e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// ConvertFunc turns one stored document into a record.
type ConvertFunc[T any] func(Document) (T, error)

// Query describes one listing.
type Query[T any] struct {
	Collection string
	Sort       bson.D // nil keeps natural order
	Convert    ConvertFunc[T]
	OnFailure  OnFailure
}

// Lister runs a Query against the database handed out by a Provider.
type Lister[T any] struct {
	provider mongoconn.Provider
	query    Query[T]
	logger   *zap.Logger
}

// New creates a Lister.
func New[T any](provider mongoconn.Provider, q Query[T], logger *zap.Logger) *Lister[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lister[T]{
		provider: provider,
		query:    q,
		logger:   logger,
	}
}

// Collection returns the collection the Lister reads.
func (l *Lister[T]) Collection() string {
	return l.query.Collection
}

// Policy returns the Lister's failure policy.
func (l *Lister[T]) Policy() OnFailure {
	return l.query.OnFailure
}

// List returns every document in the collection as a record, in the
// configured sort order. The result is never nil on success.
func (l *Lister[T]) List(ctx context.Context) ([]T, error) {
	items, err := l.list(ctx)
	if err == nil {
		return items, nil
	}

	l.logger.Error("failed to list "+l.query.Collection,
		zap.String("collection", l.query.Collection),
		zap.String("failure", classify(err)),
		zap.Stringer("policy", l.query.OnFailure),
		zap.Error(err),
	)

	if l.query.OnFailure == Propagate {
		return nil, err
	}
	return []T{}, nil
}

func (l *Lister[T]) list(ctx context.Context) ([]T, error) {
	db, err := l.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if l.query.Sort != nil {
		opts.SetSort(l.query.Sort)
	}

	cursor, err := db.Collection(l.query.Collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &QueryError{Collection: l.query.Collection, Op: "find", Err: err}
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &QueryError{Collection: l.query.Collection, Op: "decode", Err: err}
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := l.query.Convert(doc)
		if err != nil {
			return nil, &QueryError{Collection: l.query.Collection, Op: "convert", Err: err}
		}
		items = append(items, item)
	}
	return items, nil
}

func classify(err error) string {
	var connErr *mongoconn.ConnectionError
	if errors.As(err, &connErr) {
		return "connection"
	}
	return "query"
}
