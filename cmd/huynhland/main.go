// Command huynhland runs the Huynh Land CMS API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/waffle/app"
	"github.com/huynhland/cms/internal/app/bootstrap"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		fmt.Fprintln(os.Stderr, "huynhland:", err)
		os.Exit(1)
	}
}
