package main

import (
	"fmt"
	"os"

	"tubescribe/cmd/tubescribe/cmd"
	"tubescribe/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
