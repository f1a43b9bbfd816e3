package types

import "encoding/json"

// PathColumn is the reserved column name holding the matched file path.
// It is always the first column of a Frame.
const PathColumn = "path"

// Record is one matched file: its path plus every parameter recovered
// from the filename. Values carry the type declared by the template
// placeholder that produced them: int for `d`, float64 for `f`, string
// for `s`, `w`, and untyped placeholders.
type Record struct {
	Path   string         // Matched filesystem path.
	Fields map[string]any // Placeholder name -> typed recovered value.
}

// Value returns the record's value for the given column. The path column
// is addressed by PathColumn. Returns ErrUnknownColumn for names the
// record does not carry.
func (r Record) Value(column string) (any, error) {
	if column == PathColumn {
		return r.Path, nil
	}
	v, ok := r.Fields[column]
	if !ok {
		return nil, ErrUnknownColumn
	}
	return v, nil
}

// MarshalJSON encodes the record as a flat object with the path and all
// field values at the top level, matching the row shape printed by the CLI.
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat[PathColumn] = r.Path
	return json.Marshal(flat)
}
