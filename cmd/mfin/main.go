package main

import (
	"os"

	"github.com/ledgerline/mfin/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
