// Package mongoconn supplies MongoDB database handles to the stores.
//
// Stores depend on the Provider interface rather than on a package-level
// client, so tests can hand them a Static provider or a fake that fails.
// Handles are shared: callers borrow them and must never disconnect them.
package mongoconn

import (
	"context"
	"fmt"
	"sync"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
)

// Provider hands out a live database handle.
type Provider interface {
	// Acquire returns the shared database handle, establishing the
	// underlying connection first if needed. Failures are *ConnectionError.
	Acquire(ctx context.Context) (*mongo.Database, error)
}

// ConnectionError reports that the store could not be reached.
type ConnectionError struct {
	Database string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Database == "" {
		return fmt.Sprintf("mongo connection failed: %v", e.Err)
	}
	return fmt.Sprintf("mongo connection to %q failed: %v", e.Database, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// DialFunc establishes a connection and returns the database handle.
type DialFunc func(ctx context.Context) (*mongo.Database, error)

// Dial returns a DialFunc that connects through WAFFLE's pooled connector
// and selects the named database. Zero pool sizes keep WAFFLE's defaults.
func Dial(uri, database string, maxPoolSize, minPoolSize uint64) DialFunc {
	poolCfg := wafflemongo.DefaultPoolConfig()
	if maxPoolSize > 0 {
		poolCfg.MaxPoolSize = maxPoolSize
	}
	if minPoolSize > 0 {
		poolCfg.MinPoolSize = minPoolSize
	}

	return func(ctx context.Context) (*mongo.Database, error) {
		client, err := wafflemongo.ConnectWithPool(ctx, uri, database, poolCfg)
		if err != nil {
			return nil, err
		}
		return client.Database(database), nil
	}
}

// Lazy is a process-wide handle that connects on first use.
//
// Concurrent first callers wait on the same dial and share its result.
// A failed dial is not remembered; the next Acquire tries again.
type Lazy struct {
	name string
	dial DialFunc

	mu sync.Mutex
	db *mongo.Database
}

// NewLazy creates a Lazy provider. name is used only in error messages.
func NewLazy(name string, dial DialFunc) *Lazy {
	return &Lazy{name: name, dial: dial}
}

// Acquire implements Provider.
func (l *Lazy) Acquire(ctx context.Context) (*mongo.Database, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db, nil
	}

	db, err := l.dial(ctx)
	if err != nil {
		return nil, &ConnectionError{Database: l.name, Err: err}
	}
	if db == nil {
		return nil, &ConnectionError{Database: l.name, Err: fmt.Errorf("dial returned no database")}
	}

	l.db = db
	return db, nil
}

// Connected reports whether a handle has been established.
func (l *Lazy) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

// Close disconnects the underlying client if Acquire ever succeeded.
// After Close the next Acquire dials again.
func (l *Lazy) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	client := l.db.Client()
	l.db = nil
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Static is a Provider around an already-connected database, such as one
// drawn from a pool owned elsewhere.
type Static struct {
	db *mongo.Database
}

// NewStatic wraps db.
func NewStatic(db *mongo.Database) *Static {
	return &Static{db: db}
}

// Acquire implements Provider.
func (s *Static) Acquire(ctx context.Context) (*mongo.Database, error) {
	if s.db == nil {
		return nil, &ConnectionError{Err: fmt.Errorf("no database configured")}
	}
	return s.db, nil
}

// Failing is a Provider that always returns a ConnectionError wrapping Err.
// It stands in for an unreachable store.
type Failing struct {
	Err error
}

// Acquire implements Provider.
func (f Failing) Acquire(ctx context.Context) (*mongo.Database, error) {
	return nil, &ConnectionError{Err: f.Err}
}
