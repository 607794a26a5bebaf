package main

import (
	"os"

	"github.com/debendraoli/promptctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
