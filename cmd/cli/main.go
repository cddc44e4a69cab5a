package main

import (
	"fmt"
	"os"

	"github.com/fintrack/fintrack/internal/initializer"
	"github.com/fintrack/fintrack/pkg/cli"
)

func main() {
	deps, err := initializer.InitializeDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start:", err)
		os.Exit(1)
	}
	cli.New(deps, os.Stdin, os.Stdout).Run()
}
