package main

import (
	"os"

	"github.com/terraincognita07/aura/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return cli.Execute(args, os.Stdout, os.Stderr)
}
