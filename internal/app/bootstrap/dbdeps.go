// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// It is created in ConnectDB and passed to EnsureSchema, BuildHandler and
// Shutdown. Stores borrow handles from Mongo; only Shutdown closes it.
type DBDeps struct {
	Mongo *mongoconn.Lazy
}
