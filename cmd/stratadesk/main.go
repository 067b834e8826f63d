// cmd/stratadesk/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/stratadesk/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		fmt.Fprintln(os.Stderr, "stratadesk:", err)
		os.Exit(1)
	}
}
