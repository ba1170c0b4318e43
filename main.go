package main

import (
	"os"

	"github.com/prodflow/jobshop/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
