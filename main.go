package main

import (
	"os"

	"github.com/conformal/coinvoice-plugins/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
