// literal - fixed-capacity literal CLI
//
// Usage:
//
//	literal inspect [--char kind] [--capacity n] [--file path] [text]
//	literal compare <a> <b>
//	literal find [--op op] [--pos n] <haystack> <needle>
//	literal concat [--append] <a> <b>
//	literal registry add|list|buckets|get --db path
//	literal test <scenarios-dir>
//
// Every command accepts --format json for machine-readable output.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Epixu/literal-t/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}

	// Commands report their own ExitErrors; anything else is a usage or
	// flag error cobra has not printed.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	stop()
	os.Exit(cli.GetExitCode(err))
}
