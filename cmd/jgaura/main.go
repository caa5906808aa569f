// Jgaura is a command-line client for JG Aura heating gateways.
//
// It logs in to the vendor's cloud API with the account used by the JG Aura
// app, reads thermostat and hot-water state, and changes presets, target
// temperatures and the hot-water relay.
//
// Usage:
//
//	jgaura [command] [flags]
//
// The account email and preferences live in a YAML config file created with
// 'jgaura config init'. The password is never stored; pass it with
// --password, set JGAURA_PASSWORD, or enter it when prompted.
// See 'jgaura --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jgaura/aura/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newApp()).ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
