package main

import (
	"os"

	"github.com/deppfellow/assignment-api/cmd/api/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
