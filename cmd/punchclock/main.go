package main

import (
	"fmt"
	"os"

	"punchclock/internal/cli"
)

func main() {
	if err := cli.Build().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
