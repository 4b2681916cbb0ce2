package main

import (
	"fmt"
	"os"

	"shopyz-be/internal/cli"
	"shopyz-be/internal/logger"
)

func main() {
	defer logger.Sync()

	if err := cli.NewRootCommand(cli.OpenFromEnv).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
