// Version command for the storebook CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the CLI version string.
const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the storebook version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("storebook", version)
	},
}
