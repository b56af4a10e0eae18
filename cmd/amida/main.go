// Command amida generates, traces and resolves ghost-leg ladders.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/amida/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "amida: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
