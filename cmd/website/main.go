// cmd/website/main.go
package main

import (
	"context"
	"os"

	"github.com/bnomad/website/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		os.Exit(1)
	}
}
