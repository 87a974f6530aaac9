// Where: cmd/samdeploy/main.go
// What: CLI entrypoint.
// Why: Execute samdeploy commands with configured dependencies.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/poruru-code/samdeploy/internal/app"
)

func main() {
	deps, err := buildDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.Run(ctx, os.Args[1:], deps)
	stop()
	os.Exit(code)
}
