// Package hallmark discovers files whose names encode structured
// parameters. A naming template plus a partial binding set is resolved
// to a glob pattern; matched paths are parsed back against the template
// to recover typed parameter values, assembled one row per file into a
// types.Frame.
// Implements: prd004-discovery-pipeline (R1-R7);
//             docs/ARCHITECTURE § Discovery Pipeline.
package hallmark

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/mesh-intelligence/hallmark/internal/template"
	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// Options configures one Build invocation. The zero value is usable.
type Options struct {
	// Positional values bind placeholders in declaration order, before
	// named Bindings are applied. Named bindings win on overlap.
	Positional []any

	// Bindings maps placeholder names to concrete values. Placeholders
	// left unbound are wildcarded during pattern resolution.
	Bindings map[string]any

	// Debug emits each resolution step, the final pattern, and a match
	// summary to Output.
	Debug bool

	// Output receives debug traces and per-file parse diagnostics.
	// Defaults to os.Stderr.
	Output io.Writer

	// Glob enumerates paths matching a glob pattern. Defaults to
	// filepath.Glob. Overridable for tests.
	Glob func(pattern string) ([]string, error)
}

// Build discovers files matching the naming template and returns them as
// a Frame with one row per file and one column per placeholder, plus the
// path. Matched paths are sorted lexicographically before parsing, so
// row order is a repeatable function of filesystem state. Paths that
// match the glob pattern but not the strict template are reported to
// Options.Output and skipped. An empty match set yields an empty Frame,
// not an error.
func Build(format string, opts Options) (*types.Frame, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	glob := opts.Glob
	if glob == nil {
		glob = filepath.Glob
	}

	tmpl, err := template.Compile(format)
	if err != nil {
		return nil, err
	}

	bindings, err := mergeBindings(tmpl.Fields(), opts.Positional, opts.Bindings)
	if err != nil {
		return nil, err
	}

	res, err := template.Resolve(tmpl, bindings)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		for _, s := range res.Steps {
			fmt.Fprintf(out, "%d %s %v\n", s.Attempt, s.Pattern, s.Bindings)
		}
		fmt.Fprintf(out, "Pattern: %q\n", res.Pattern)
	}

	matches, err := glob(res.Pattern)
	if err != nil {
		return nil, fmt.Errorf("enumerating %q: %w", res.Pattern, err)
	}
	sort.Strings(matches)

	if opts.Debug {
		switch n := len(matches); {
		case n > 1:
			fmt.Fprintf(out, "%d matches, e.g., %q\n", n, matches[0])
		case n == 1:
			fmt.Fprintf(out, "1 match, i.e., %q\n", matches[0])
		default:
			fmt.Fprintln(out, "No match; please check the naming template")
		}
	}

	// Parse each path against the original template, original type
	// specifiers intact. A glob match that fails the strict parse is
	// possible when literal/placeholder boundaries are ambiguous; such
	// paths are skipped, never fatal.
	var records []types.Record
	for _, path := range matches {
		values, err := tmpl.Parse(path)
		if err != nil {
			fmt.Fprintf(out, "failed to parse %q\n", path)
			continue
		}
		records = append(records, types.Record{Path: path, Fields: values})
	}
	return types.NewFrame(tmpl.Fields(), records), nil
}

// mergeBindings builds the initial binding set: positional values in
// placeholder declaration order, then named bindings on top.
func mergeBindings(fields []string, positional []any, named map[string]any) (map[string]any, error) {
	if len(positional) > len(fields) {
		return nil, fmt.Errorf("%w: %d positional values for %d placeholders",
			types.ErrTooManyValues, len(positional), len(fields))
	}
	bindings := make(map[string]any, len(positional)+len(named))
	for i, v := range positional {
		bindings[fields[i]] = v
	}
	for k, v := range named {
		bindings[k] = v
	}
	return bindings, nil
}
