package main

import (
	"os"

	"github.com/veec/commgen/cmd/commgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
