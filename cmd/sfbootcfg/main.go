// sfbootcfg reads and changes NIC boot firmware settings through sfboot.
//
// Usage:
//
//	sfbootcfg show [section...] [--scope all|global|adapter]
//	sfbootcfg set [--adapter NAME] [--verify] key=value...
//	sfbootcfg apply -f state.yaml [-f more.yaml] [--parallel N] [--verify]
//	sfbootcfg parse [file|-]
//	sfbootcfg attributes
//	sfbootcfg task < params.json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newApp()).ExecuteContext(ctx)
	stop()
	if err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
