// Init command for the storebook CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the storebook directories and workbooks",
	Long: `Init creates the configuration directory with a default config.yaml
and the data directory with empty workbooks for customers, products,
orders and quotes. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and default config.yaml already exist at this
		// point; PersistentPreRunE created them.
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		if flagJSON {
			return printJSON(map[string]string{
				"config_dir": configDir,
				"data_dir":   store.DataDir(),
			})
		}
		fmt.Println("config dir:", configDir)
		fmt.Println("data dir:  ", store.DataDir())
		return nil
	},
}
