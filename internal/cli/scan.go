// Scan command: resolve a naming template, discover matching files, and
// print the resulting frame.
// Implements: prd006-hallmark-cli R2 (scan command);
//
//	docs/ARCHITECTURE § CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hallmark/pkg/hallmark"
	"github.com/mesh-intelligence/hallmark/pkg/sqlite"
	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// scanFlags holds flag values for the scan command.
type scanFlags struct {
	save      bool
	jsonlPath string
	csvPath   string
}

func newScanCmd() *cobra.Command {
	var sf scanFlags

	cmd := &cobra.Command{
		Use:   "scan <template> [name=value ...]",
		Short: "Discover files matching a naming template",
		Long: `Scan resolves the naming template to a glob pattern, wildcarding any
placeholder not bound on the command line, and parses every matched
filename back into typed parameters.

Example:
  hallmark scan 'data/run{run:d}_p{parameter:d}.csv'
  hallmark scan 'data/run{run:d}_p{parameter:d}.csv' run=1
  hallmark scan 'data/run{run:d}_p{parameter:d}.csv' --debug --json
  hallmark scan 'data/run{run:d}_p{parameter:d}.csv' --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, sf)
		},
	}

	cmd.Flags().BoolVar(&sf.save, "save", false, "persist the frame as a snapshot and print its ID")
	cmd.Flags().StringVar(&sf.jsonlPath, "jsonl", "", "also write the frame to FILE as JSON Lines")
	cmd.Flags().StringVar(&sf.csvPath, "csv", "", "also write the frame to FILE as CSV")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, sf scanFlags) error {
	dataDir, debug, err := resolveSettings()
	if err != nil {
		return err
	}

	bindings, err := parseBindings(args[1:])
	if err != nil {
		return err
	}

	frame, err := hallmark.Build(args[0], hallmark.Options{
		Bindings: bindings,
		Debug:    debug,
		Output:   diagWriter(),
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if err := printFrame(cmd, frame); err != nil {
		return err
	}

	if sf.jsonlPath != "" {
		if err := frame.WriteJSONL(sf.jsonlPath); err != nil {
			return fmt.Errorf("write JSONL: %w", err)
		}
	}
	if sf.csvPath != "" {
		f, err := os.Create(sf.csvPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", sf.csvPath, err)
		}
		defer f.Close()
		if err := frame.WriteCSV(f); err != nil {
			return fmt.Errorf("write CSV: %w", err)
		}
	}

	if sf.save {
		store := sqlite.NewStore()
		if err := store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
			return fmt.Errorf("attach store: %w", err)
		}
		defer store.Detach()

		id, err := store.Save(args[0], frame)
		if err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot: %s\n", id)
	}

	return nil
}
