package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/dalemusser/stratadesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type named struct {
	ID   string
	Name string
}

func convertNamed(d Document) (named, error) {
	id, err := d.ID()
	if err != nil {
		return named{}, err
	}
	return named{ID: id, Name: d.String("name")}, nil
}

func TestList_SwallowOnConnectionFailure(t *testing.T) {
	l := New(mongoconn.Failing{Err: errors.New("down")}, Query[named]{
		Collection: "things",
		Convert:    convertNamed,
		OnFailure:  Swallow,
	}, zap.NewNop())

	got, err := l.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v, want nil under Swallow", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", got)
	}
}

func TestList_PropagateOnConnectionFailure(t *testing.T) {
	boom := errors.New("down")
	l := New(mongoconn.Failing{Err: boom}, Query[named]{
		Collection: "things",
		Convert:    convertNamed,
		OnFailure:  Propagate,
	}, zap.NewNop())

	got, err := l.List(context.Background())
	if err == nil {
		t.Fatal("List() error = nil, want error under Propagate")
	}
	if got != nil {
		t.Errorf("List() = %v, want nil on error", got)
	}
	var connErr *mongoconn.ConnectionError
	if !errors.As(err, &connErr) {
		t.Errorf("error type = %T, want *mongoconn.ConnectionError", err)
	}
	if !errors.Is(err, boom) {
		t.Error("error should wrap the provider cause")
	}
}

func TestNew_NilLogger(t *testing.T) {
	l := New(mongoconn.Failing{Err: errors.New("down")}, Query[named]{
		Collection: "things",
		Convert:    convertNamed,
	}, nil)

	if _, err := l.List(context.Background()); err != nil {
		t.Errorf("List() error = %v", err)
	}
	if l.Collection() != "things" {
		t.Errorf("Collection() = %q", l.Collection())
	}
	if l.Policy() != Swallow {
		t.Errorf("Policy() = %v, want swallow", l.Policy())
	}
}

func TestOnFailure_String(t *testing.T) {
	if Swallow.String() != "swallow" || Propagate.String() != "propagate" {
		t.Errorf("unexpected names: %s %s", Swallow, Propagate)
	}
	if got := OnFailure(9).String(); got != "OnFailure(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestQueryError(t *testing.T) {
	cause := errors.New("bad")
	err := &QueryError{Collection: "things", Op: "find", Err: cause}
	if got, want := err.Error(), "things find: bad"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("QueryError should unwrap to its cause")
	}
}

func TestList_SortedAndConverted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("things").InsertMany(ctx, []any{
		bson.M{"_id": "c", "name": "Charlie"},
		bson.M{"_id": "a", "name": "Alpha"},
		bson.M{"_id": "b", "name": "Bravo"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	l := New(mongoconn.NewStatic(db), Query[named]{
		Collection: "things",
		Sort:       bson.D{{Key: "name", Value: 1}},
		Convert:    convertNamed,
		OnFailure:  Propagate,
	}, zap.NewNop())

	got, err := l.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"Alpha", "Bravo", "Charlie"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d items, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("item %d name = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestList_EmptyCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	l := New(mongoconn.NewStatic(db), Query[named]{
		Collection: "nothing_here",
		Convert:    convertNamed,
		OnFailure:  Propagate,
	}, zap.NewNop())

	got, err := l.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", got)
	}
}

func TestList_ConvertFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := db.Collection("things").InsertOne(ctx, bson.M{"name": "x"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("nope")
	l := New(mongoconn.NewStatic(db), Query[named]{
		Collection: "things",
		Convert: func(Document) (named, error) {
			return named{}, boom
		},
		OnFailure: Propagate,
	}, zap.NewNop())

	_, err := l.List(ctx)
	var qErr *QueryError
	if !errors.As(err, &qErr) {
		t.Fatalf("error = %v, want *QueryError", err)
	}
	if qErr.Op != "convert" {
		t.Errorf("Op = %q, want convert", qErr.Op)
	}
	if !errors.Is(err, boom) {
		t.Error("QueryError should wrap the convert error")
	}
}
