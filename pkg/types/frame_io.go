// Frame rendering and export: text table, JSON, CSV, and atomic JSONL.
// Implements: prd001-frame-core R5 (output modes);
//
//	docs/ARCHITECTURE § Output Modes.
package types

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
)

// String renders the Frame as an aligned text table with a header row,
// one line per record, and a trailing row count.
func (f *Frame) String() string {
	if len(f.records) == 0 {
		return "No matches.\n"
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.ToUpper(strings.Join(f.columns, "\t")))
	for _, r := range f.records {
		cells := make([]string, len(f.columns))
		for i, col := range f.columns {
			v, _ := r.Value(col)
			cells[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	// Trim trailing padding from each line.
	var out strings.Builder
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		out.WriteString(strings.TrimRight(line, " "))
		out.WriteByte('\n')
	}
	fmt.Fprintf(&out, "Total: %d row(s)\n", len(f.records))
	return out.String()
}

// MarshalJSON encodes the Frame as an array of flat row objects.
func (f *Frame) MarshalJSON() ([]byte, error) {
	// Encode an empty frame as [] rather than null.
	if len(f.records) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(f.records)
}

// WriteCSV writes the Frame as CSV with a header row. Column order
// matches Columns().
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range f.records {
		row := make([]string, len(f.columns))
		for i, col := range f.columns {
			v, err := r.Value(col)
			if err != nil {
				return err
			}
			row[i] = fmt.Sprint(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSONL atomically writes the Frame to path as JSON Lines, one flat
// row object per line, using the temp-file, fsync, rename pattern.
func (f *Frame) WriteJSONL(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc := json.NewEncoder(tmp)
	for _, r := range f.records {
		if err := enc.Encode(r); err != nil {
			tmp.Close()
			return fmt.Errorf("encoding record: %w", err)
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmpName, path, err)
	}
	return nil
}
