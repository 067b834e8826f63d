package mongoconn

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestLazy_DialsOnce(t *testing.T) {
	var dials int32
	want := new(mongo.Database)

	l := NewLazy("test", func(ctx context.Context) (*mongo.Database, error) {
		atomic.AddInt32(&dials, 1)
		time.Sleep(10 * time.Millisecond)
		return want, nil
	})

	if l.Connected() {
		t.Fatal("Connected() = true before first Acquire")
	}

	const callers = 32
	var wg sync.WaitGroup
	results := make([]*mongo.Database, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = l.Acquire(context.Background())
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&dials); got != 1 {
		t.Errorf("dial called %d times, want 1", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("Acquire() error = %v", errs[i])
		}
		if results[i] != want {
			t.Errorf("caller %d got a different handle", i)
		}
	}
	if !l.Connected() {
		t.Error("Connected() = false after Acquire")
	}
}

func TestLazy_FailureIsNotRemembered(t *testing.T) {
	boom := errors.New("connection refused")
	var dials int32
	want := new(mongo.Database)

	l := NewLazy("stratadesk", func(ctx context.Context) (*mongo.Database, error) {
		if atomic.AddInt32(&dials, 1) == 1 {
			return nil, boom
		}
		return want, nil
	})

	_, err := l.Acquire(context.Background())
	if err == nil {
		t.Fatal("first Acquire() should fail")
	}
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error type = %T, want *ConnectionError", err)
	}
	if connErr.Database != "stratadesk" {
		t.Errorf("Database = %q, want %q", connErr.Database, "stratadesk")
	}
	if !errors.Is(err, boom) {
		t.Error("ConnectionError should unwrap to the dial error")
	}

	db, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if db != want {
		t.Error("second Acquire() returned unexpected handle")
	}
	if got := atomic.LoadInt32(&dials); got != 2 {
		t.Errorf("dial called %d times, want 2", got)
	}
}

func TestLazy_NilDatabase(t *testing.T) {
	l := NewLazy("test", func(ctx context.Context) (*mongo.Database, error) {
		return nil, nil
	})

	_, err := l.Acquire(context.Background())
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error = %v, want *ConnectionError", err)
	}
}

func TestLazy_CloseWithoutConnect(t *testing.T) {
	l := NewLazy("test", func(ctx context.Context) (*mongo.Database, error) {
		t.Fatal("Close should not dial")
		return nil, nil
	})
	if err := l.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestStatic(t *testing.T) {
	want := new(mongo.Database)
	p := NewStatic(want)

	got, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got != want {
		t.Error("Acquire() returned a different handle")
	}

	_, err = NewStatic(nil).Acquire(context.Background())
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Errorf("nil Static error = %v, want *ConnectionError", err)
	}
}

func TestFailing(t *testing.T) {
	boom := errors.New("unreachable")
	_, err := Failing{Err: boom}.Acquire(context.Background())

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error type = %T, want *ConnectionError", err)
	}
	if !errors.Is(err, boom) {
		t.Error("error should wrap the configured cause")
	}
}

func TestConnectionError_Message(t *testing.T) {
	err := &ConnectionError{Database: "desk", Err: errors.New("timeout")}
	if got, want := err.Error(), `mongo connection to "desk" failed: timeout`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &ConnectionError{Err: errors.New("timeout")}
	if got, want := err.Error(), "mongo connection failed: timeout"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
