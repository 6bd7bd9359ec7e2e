package main

import (
	"os"

	"github.com/arthur-debert/symkeeper/cmd/symkeeper"
)

func main() {
	rootCmd := symkeeper.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		symkeeper.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
