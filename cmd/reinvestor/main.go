package main

import (
	"os"

	"github.com/rustyeddy/reinvestor/cmd/reinvestor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
