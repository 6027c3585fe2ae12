package main

import (
	"fmt"
	"os"

	"github.com/codet-dev/codet/cmd/codet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
