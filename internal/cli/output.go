// Output helpers: colorized diagnostics and frame rendering.
// Implements: prd006-hallmark-cli R8 (output modes).
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// diagColor highlights resolution traces and parse diagnostics on stderr.
// fatih/color disables itself automatically when stderr is not a terminal.
var diagColor = color.New(color.FgYellow)

// diagWriter returns the writer for debug traces and parse diagnostics.
// Lines are colorized unless --no-color is set or stderr is piped.
func diagWriter() io.Writer {
	if flags.noColor {
		color.NoColor = true
	}
	return &colorLineWriter{c: diagColor, w: os.Stderr}
}

// colorLineWriter applies one color to every complete line it receives.
type colorLineWriter struct {
	c *color.Color
	w io.Writer
}

func (cw *colorLineWriter) Write(p []byte) (int, error) {
	s := strings.TrimRight(string(p), "\n")
	if _, err := cw.c.Fprintln(cw.w, s); err != nil {
		return 0, err
	}
	return len(p), nil
}

// printFrame writes the frame to the command's stdout, as a JSON array
// when --json is set and as an aligned text table otherwise.
func printFrame(cmd *cobra.Command, f *types.Frame) error {
	if flags.jsonMode {
		out, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal frame: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), f.String())
	return nil
}
