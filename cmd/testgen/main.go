// Package main provides testgen, a deterministic key-value store fixture
// generator.
package main

import (
	"os"

	"github.com/jgarzik/testgen/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
