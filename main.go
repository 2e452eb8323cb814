package main

import (
	"os"

	"github.com/intelligrit/salesmap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
