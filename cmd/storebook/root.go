// Root command for the storebook CLI.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/opal-works/storebook/internal/paths"
	"github.com/opal-works/storebook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:     "storebook",
	Short:   "Storebook manages customers, products, orders and quotes in flat workbooks",
	Version: version,
	// Subcommand errors are real failures, not usage mistakes.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.storebook-data)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(reportCmd)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > STOREBOOK_DATA_DIR env >
// default $(CWD)/.storebook-data.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > STOREBOOK_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// userErrors are failures caused by the invocation rather than the
// system: bad input, unknown ids, disallowed transitions.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidName,
	types.ErrInvalidStatus,
	types.ErrInvalidTransition,
	types.ErrInvalidQuantity,
	types.ErrInvalidPrice,
	types.ErrInvalidDiscount,
	types.ErrInvalidValidity,
	types.ErrInvalidDateRange,
	errBadArgument,
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, ue := range userErrors {
		if errors.Is(err, ue) {
			return exitUserError
		}
	}
	return exitSysError
}
