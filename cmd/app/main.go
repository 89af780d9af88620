package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bsparks/simple-script/internal/cli"
)

var (
	// Version is the current version of the binary, set at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
)

func main() {
	app := &cli.App{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Exit:      os.Exit,
		Version:   Version,
		BuildDate: BuildDate,
		Commit:    Commit,
	}

	code, err := app.Run(context.Background(), os.Args[1:]...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cli.Name, err)
	}
	os.Exit(code)
}
