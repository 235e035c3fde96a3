// ABOUTME: Entry point for the assistant CLI
// ABOUTME: Sends chat and cancel requests to an assistant backend from the shell

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                _     _              _
  __ _ ___ ___(_)___| |_ __ _ _ __ | |_
 / _' / __/ __| / __| __/ _' | '_ \| __|
| (_| \__ \__ \ \__ \ || (_| | | | | |_
 \__,_|___/___/_|___/\__\__,_|_| |_|\__|
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		color.Red("Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
