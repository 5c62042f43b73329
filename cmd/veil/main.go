package main

import (
	"os"

	"github.com/veildev/veil/cmd/veil/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
