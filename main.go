package main

import (
	"os"

	"github.com/tmorland/facegen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
