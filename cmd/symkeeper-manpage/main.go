package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/symkeeper/cmd/symkeeper"
	"github.com/arthur-debert/symkeeper/internal/version"
)

func main() {
	rootCmd := symkeeper.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SYMKEEPER",
		Section: "1",
		Source:  "symkeeper " + version.Version,
		Manual:  "symkeeper manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
