package main

import (
	"os"

	"github.com/shoplore/ordersynth/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
