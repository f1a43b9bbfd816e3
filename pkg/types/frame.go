package types

import (
	"fmt"
	"reflect"
)

// Frame is an ordered table of records, one row per matched file.
// Columns are the path followed by the template's placeholder names in
// declaration order. A Frame is immutable after construction; Filter and
// FilterAll return new Frames sharing the underlying records.
// Implements: prd001-frame-core R2, R3.
type Frame struct {
	columns []string // PathColumn followed by field names.
	records []Record
}

// NewFrame builds a Frame over the given field names (placeholder
// declaration order, excluding the path column) and records.
func NewFrame(fields []string, records []Record) *Frame {
	columns := make([]string, 0, len(fields)+1)
	columns = append(columns, PathColumn)
	columns = append(columns, fields...)
	return &Frame{columns: columns, records: records}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.records)
}

// Columns returns the column names: PathColumn first, then the template
// fields in declaration order. The returned slice is a copy.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Records returns the rows in order. The returned slice is a copy; the
// records themselves are shared.
func (f *Frame) Records() []Record {
	out := make([]Record, len(f.records))
	copy(out, f.records)
	return out
}

// Column returns the named column as a value sequence in row order.
// Returns ErrUnknownColumn if the Frame has no such column.
func (f *Frame) Column(name string) ([]any, error) {
	if !f.hasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]any, len(f.records))
	for i, r := range f.records {
		v, err := r.Value(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Filter returns the rows satisfying ANY of the given constraints,
// preserving row order. A constraint maps a column name to either a
// scalar (row matches on equality) or a slice/array (row matches on
// membership). Constraints accumulate with logical OR; this is a
// committed contract. Use FilterAll for the every-constraint
// interpretation.
// An empty constraint set selects nothing. Unknown column names return
// ErrUnknownColumn rather than an empty result.
// Implements: prd001-frame-core R4.
func (f *Frame) Filter(constraints map[string]any) (*Frame, error) {
	return f.filter(constraints, false)
}

// FilterAll returns the rows satisfying EVERY given constraint. Same
// constraint shapes as Filter; an empty constraint set selects nothing.
func (f *Frame) FilterAll(constraints map[string]any) (*Frame, error) {
	return f.filter(constraints, true)
}

func (f *Frame) filter(constraints map[string]any, all bool) (*Frame, error) {
	for col, want := range constraints {
		if !f.hasColumn(col) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		if err := validateConstraint(col, want); err != nil {
			return nil, err
		}
	}

	var kept []Record
	for _, r := range f.records {
		// No constraints leaves the mask all-false in both modes.
		matched := false
		if all {
			matched = len(constraints) > 0
		}
		for col, want := range constraints {
			got, err := r.Value(col)
			if err != nil {
				return nil, err
			}
			ok := constraintMatches(got, want)
			if all {
				matched = matched && ok
			} else {
				matched = matched || ok
			}
		}
		if matched {
			kept = append(kept, r)
		}
	}
	return &Frame{columns: f.Columns(), records: kept}, nil
}

func (f *Frame) hasColumn(name string) bool {
	for _, c := range f.columns {
		if c == name {
			return true
		}
	}
	return false
}

// validateConstraint rejects constraint values that can never match a
// record value: anything other than a comparable scalar or a slice/array
// of them.
func validateConstraint(col string, want any) error {
	if want == nil {
		return fmt.Errorf("%w: column %q: nil", ErrInvalidFilter, col)
	}
	rv := reflect.ValueOf(want)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if err := validateConstraint(col, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}
	if !rv.Type().Comparable() {
		return fmt.Errorf("%w: column %q: %T", ErrInvalidFilter, col, want)
	}
	return nil
}

// constraintMatches reports whether a row value satisfies one constraint
// value: membership for slices and arrays, equality otherwise.
func constraintMatches(got, want any) bool {
	rv := reflect.ValueOf(want)
	if want != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		for i := 0; i < rv.Len(); i++ {
			if valueEqual(got, rv.Index(i).Interface()) {
				return true
			}
		}
		return false
	}
	return valueEqual(got, want)
}

// valueEqual compares a record value with a constraint value. Numeric
// kinds compare by magnitude so that int(1), int64(1), and float64(1)
// all match a `d`-typed field holding 1.
func valueEqual(got, want any) bool {
	if gf, ok := toFloat(got); ok {
		if wf, ok := toFloat(want); ok {
			return gf == wf
		}
		return false
	}
	return got == want
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
