// Implements: prd006-hallmark-cli (R1.2: version command).
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hallmark/pkg/hallmark"
)

const modulePath = "github.com/mesh-intelligence/hallmark"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hallmark version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "hallmark v%s\nmodule: %s\n", hallmark.Version, modulePath)
			return nil
		},
	}
}
