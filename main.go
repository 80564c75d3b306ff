package main

import (
	"os"

	"github.com/sportiq/sportiq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
