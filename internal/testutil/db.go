// Package testutil provides database and HTTP helpers for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/stratadesk/internal/app/system/indexes"
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultTestDBURI is used when STRATADESK_TEST_MONGO_URI is unset.
	DefaultTestDBURI = "mongodb://localhost:27017"
	// TestDBName prefixes every per-test database.
	TestDBName = "stratadesk_test"

	// MongoDB caps database names at 63 bytes.
	maxDBName = 63
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

func testURI() string {
	if uri := os.Getenv("STRATADESK_TEST_MONGO_URI"); uri != "" {
		return uri
	}
	return DefaultTestDBURI
}

// sharedClient connects once per test binary.
func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Client().
			ApplyURI(testURI()).
			SetMaxPoolSize(100).
			SetMinPoolSize(5).
			SetMaxConnIdleTime(30 * time.Second).
			SetServerSelectionTimeout(10 * time.Second)

		client, clientErr = mongo.Connect(ctx, opts)
		if clientErr != nil {
			return
		}
		clientErr = client.Ping(ctx, nil)
	})
	return client, clientErr
}

// SetupTestDB returns a fresh database named after the test plus a random
// suffix, with the production indexes in place. The database is dropped on
// cleanup.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := sharedClient()
	if err != nil {
		t.Fatalf("failed to connect to test MongoDB at %s: %v", testURI(), err)
	}

	db := c.Database(dbNameFor(t.Name()))

	ctx, cancel := TestContext()
	defer cancel()

	if err := db.Drop(ctx); err != nil {
		t.Fatalf("failed to drop test database: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop test database on cleanup: %v", err)
		}
	})

	return db
}

// SetupTestProvider wraps SetupTestDB in a connection provider.
func SetupTestProvider(t *testing.T) (mongoconn.Provider, *mongo.Database) {
	t.Helper()
	db := SetupTestDB(t)
	return mongoconn.NewStatic(db), db
}

// Seed inserts docs into coll and fails the test on error.
func Seed(t *testing.T, db *mongo.Database, coll string, docs ...any) {
	t.Helper()
	if len(docs) == 0 {
		return
	}
	ctx, cancel := TestContext()
	defer cancel()
	if _, err := db.Collection(coll).InsertMany(ctx, docs); err != nil {
		t.Fatalf("seed %s: %v", coll, err)
	}
}

// dbNameFor maps a test name onto a valid, length-capped database name.
// Test names repeat across packages and `go test ./...` runs packages in
// parallel, so a random suffix keeps each database private to one test.
func dbNameFor(testName string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, testName)

	suffix := "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	name := fmt.Sprintf("%s_%s", TestDBName, clean)
	if len(name)+len(suffix) > maxDBName {
		name = name[:maxDBName-len(suffix)]
	}
	return name + suffix
}

// TestContext returns a context with a reasonable timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
