// Filter command: reload a snapshot and select rows by column values.
// Implements: prd006-hallmark-cli R4 (filter command);
//
//	prd001-frame-core R4 (OR accumulation, FilterAll variant).
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hallmark/pkg/sqlite"
	"github.com/mesh-intelligence/hallmark/pkg/types"
)

func newFilterCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "filter <snapshot-id> <column=value[,value...] ...>",
		Short: "Filter a saved snapshot by column values",
		Long: `Filter reloads a snapshot and keeps the rows matching the given
constraints. A comma list matches on membership, a single value on
equality. Constraints combine with OR: a row is kept when it satisfies
any one of them. Pass --all for the every-constraint interpretation.

Example:
  hallmark filter 0190a5c2 run=1
  hallmark filter 0190a5c2 run=1,2 parameter=10
  hallmark filter 0190a5c2 run=1 parameter=10 --all`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, args, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "require every constraint to match (AND instead of OR)")
	return cmd
}

func runFilter(cmd *cobra.Command, args []string, all bool) error {
	dataDir, _, err := resolveSettings()
	if err != nil {
		return err
	}

	constraints, err := parseConstraints(args[1:])
	if err != nil {
		return err
	}

	store := sqlite.NewStore()
	if err := store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer store.Detach()

	_, frame, err := store.Get(args[0])
	if err != nil {
		return fmt.Errorf("get snapshot %s: %w", args[0], err)
	}

	var filtered *types.Frame
	if all {
		filtered, err = frame.FilterAll(constraints)
	} else {
		filtered, err = frame.Filter(constraints)
	}
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	return printFrame(cmd, filtered)
}
