package main

import (
	"os"

	"github.com/existflow/mandarina/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
