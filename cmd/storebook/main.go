// Package main provides the storebook CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "storebook:", err)
		os.Exit(exitCode(err))
	}
}
