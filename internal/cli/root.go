// Package cli implements the hallmark command-line interface.
// Implements: prd006-hallmark-cli (R1: root command structure, R6: global flags,
//             R7: exit codes, R8: output modes);
//             docs/ARCHITECTURE § CLI.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// Exit codes (prd006-hallmark-cli R7).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	debugMode bool
	noColor   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "hallmark" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hallmark",
		Short: "Discover files whose names encode structured parameters",
		Long: "Hallmark resolves naming templates like \"data/run{run:d}_p{p:d}.csv\"\n" +
			"into glob patterns, parses the matched filenames back into typed\n" +
			"parameters, and presents the results as a filterable table.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	// Global persistent flags (prd006-hallmark-cli R6).
	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "snapshot data directory (default: .hallmark-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&flags.debugMode, "debug", false, "print pattern resolution steps and match summary")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newFilterCmd())
	root.AddCommand(newSnapshotCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if isSysError(err) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}

// isSysError reports whether the error came from the environment rather
// than the user's input: filesystem or store lifecycle failures.
func isSysError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return true
	}
	return errors.Is(err, types.ErrStoreDetached) || errors.Is(err, types.ErrAlreadyAttached)
}
