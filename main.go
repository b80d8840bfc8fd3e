package main

import (
	"os"

	"github.com/mnordin/planverk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
