// Snapshot management commands: list, show, delete.
// Implements: prd006-hallmark-cli R5 (snapshot commands);
//
//	prd003-snapshot-store R5, R6.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hallmark/pkg/sqlite"
	"github.com/mesh-intelligence/hallmark/pkg/types"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage saved scan snapshots",
	}
	cmd.AddCommand(newSnapshotListCmd())
	cmd.AddCommand(newSnapshotShowCmd())
	cmd.AddCommand(newSnapshotDeleteCmd())
	return cmd
}

// withStore attaches the snapshot store for the duration of fn.
func withStore(fn func(store types.Store) error) error {
	dataDir, _, err := resolveSettings()
	if err != nil {
		return err
	}
	store := sqlite.NewStore()
	if err := store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer store.Detach()
	return fn(store)
}

func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store types.Store) error {
				metas, err := store.List()
				if err != nil {
					return fmt.Errorf("list snapshots: %w", err)
				}
				if flags.jsonMode {
					out, err := json.MarshalIndent(metas, "", "  ")
					if err != nil {
						return fmt.Errorf("marshal snapshots: %w", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(out))
					return nil
				}
				printSnapshotTable(cmd, metas)
				return nil
			})
		},
	}
}

func newSnapshotShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <snapshot-id>",
		Short: "Show a snapshot's metadata and rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store types.Store) error {
				meta, frame, err := store.Get(args[0])
				if err != nil {
					return fmt.Errorf("get snapshot %s: %w", args[0], err)
				}
				if !flags.jsonMode {
					fmt.Fprintf(cmd.OutOrStdout(), "Snapshot: %s\nTemplate: %s\nCreated:  %s\n\n",
						meta.SnapshotID, meta.Template, meta.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return printFrame(cmd, frame)
			})
		},
	}
}

func newSnapshotDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <snapshot-id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store types.Store) error {
				if err := store.Delete(args[0]); err != nil {
					return fmt.Errorf("delete snapshot %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

// printSnapshotTable prints snapshot metadata in a human-readable table.
func printSnapshotTable(cmd *cobra.Command, metas []types.SnapshotMeta) {
	if len(metas) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No snapshots found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTEMPLATE\tROWS\tCREATED")
	fmt.Fprintln(w, "--\t--------\t----\t-------")
	for _, m := range metas {
		// Truncate the ID to the first 8 chars for readability.
		shortID := m.SnapshotID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		tmpl := m.Template
		if len(tmpl) > 50 {
			tmpl = tmpl[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", shortID, tmpl, m.RowCount, m.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(line, " "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Total: %d snapshot(s)\n", len(metas))
}
