// cmd/stratamember/main.go
package main

import (
	"context"
	"log"

	"github.com/dalemusser/stratamember/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	// WAFFLE handles signals, config, logging and graceful shutdown.
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
