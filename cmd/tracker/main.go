package main

import (
	"fmt"
	"os"

	"github.com/monocle-dev/tracker/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(&cli.App{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
