// Snapshot persistence: save, reload, list, and delete Frames.
// Field values are stored as JSON with a per-column value type recorded
// in snapshot metadata, so int/float/string kinds survive the round trip.
// Implements: prd003-snapshot-store R4 (save), R5 (reload), R6 (list/delete).
package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// Column value types recorded in snapshot metadata.
const (
	valueTypeInteger = "integer"
	valueTypeFloat   = "float"
	valueTypeText    = "text"
)

// columnJSON describes one frame column in the snapshots.columns blob.
type columnJSON struct {
	Name      string `json:"name"`
	ValueType string `json:"value_type"`
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Save persists the frame under a fresh UUID v7 and returns the ID.
func (s *Store) Save(tmpl string, f *types.Frame) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return "", types.ErrStoreDetached
	}

	id := newUUID()
	now := time.Now().UTC()

	colBlob, err := json.Marshal(describeColumns(f))
	if err != nil {
		return "", fmt.Errorf("encoding columns: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO snapshots (snapshot_id, template, columns, row_count, created_at) VALUES (?, ?, ?, ?, ?)",
		id, tmpl, string(colBlob), f.Len(), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("inserting snapshot: %w", err)
	}

	for i, r := range f.Records() {
		fields, err := json.Marshal(r.Fields)
		if err != nil {
			return "", fmt.Errorf("encoding row %d: %w", i, err)
		}
		_, err = tx.Exec(
			"INSERT INTO snapshot_rows (snapshot_id, ordinal, path, fields) VALUES (?, ?, ?, ?)",
			id, i, r.Path, string(fields),
		)
		if err != nil {
			return "", fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing snapshot: %w", err)
	}
	return id, nil
}

// Get reloads a snapshot by ID. Rows come back in saved ordinal order
// with field values converted to their recorded column types.
func (s *Store) Get(id string) (types.SnapshotMeta, *types.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return types.SnapshotMeta{}, nil, types.ErrStoreDetached
	}
	if id == "" {
		return types.SnapshotMeta{}, nil, types.ErrInvalidID
	}
	id, err := s.resolveID(id)
	if err != nil {
		return types.SnapshotMeta{}, nil, err
	}

	row := s.db.QueryRow(
		"SELECT snapshot_id, template, columns, row_count, created_at FROM snapshots WHERE snapshot_id = ?",
		id,
	)
	meta, cols, err := hydrateMeta(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.SnapshotMeta{}, nil, types.ErrNotFound
		}
		return types.SnapshotMeta{}, nil, fmt.Errorf("getting snapshot %s: %w", id, err)
	}

	rows, err := s.db.Query(
		"SELECT path, fields FROM snapshot_rows WHERE snapshot_id = ? ORDER BY ordinal",
		id,
	)
	if err != nil {
		return types.SnapshotMeta{}, nil, fmt.Errorf("querying rows for %s: %w", id, err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var path, blob string
		if err := rows.Scan(&path, &blob); err != nil {
			return types.SnapshotMeta{}, nil, fmt.Errorf("scanning row: %w", err)
		}
		fields, err := decodeFields(blob, cols)
		if err != nil {
			return types.SnapshotMeta{}, nil, fmt.Errorf("decoding row for %s: %w", id, err)
		}
		records = append(records, types.Record{Path: path, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return types.SnapshotMeta{}, nil, fmt.Errorf("iterating rows for %s: %w", id, err)
	}

	fieldNames := make([]string, len(cols))
	for i, c := range cols {
		fieldNames[i] = c.Name
	}
	return meta, types.NewFrame(fieldNames, records), nil
}

// List returns metadata for every snapshot, newest first.
func (s *Store) List() ([]types.SnapshotMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	// UUID v7 IDs sort chronologically, unlike RFC3339Nano strings,
	// which trim trailing zeros.
	rows, err := s.db.Query(
		"SELECT snapshot_id, template, columns, row_count, created_at FROM snapshots ORDER BY snapshot_id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var metas []types.SnapshotMeta
	for rows.Next() {
		meta, _, err := hydrateMeta(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return metas, nil
}

// Delete removes a snapshot and its rows.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return types.ErrStoreDetached
	}
	if id == "" {
		return types.ErrInvalidID
	}
	id, err := s.resolveID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snapshot_rows WHERE snapshot_id = ?", id); err != nil {
		return fmt.Errorf("deleting rows for %s: %w", id, err)
	}
	res, err := tx.Exec("DELETE FROM snapshots WHERE snapshot_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return tx.Commit()
}

// resolveID expands a snapshot ID prefix to the full ID. An exact match
// wins; otherwise a unique prefix match is accepted. Callers hold the
// store lock.
func (s *Store) resolveID(id string) (string, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM snapshots WHERE snapshot_id = ?", id).Scan(&exists)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("resolving snapshot ID %s: %w", id, err)
	}

	rows, err := s.db.Query("SELECT snapshot_id FROM snapshots WHERE snapshot_id LIKE ? || '%' LIMIT 2", id)
	if err != nil {
		return "", fmt.Errorf("resolving snapshot ID %s: %w", id, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var full string
		if err := rows.Scan(&full); err != nil {
			return "", fmt.Errorf("resolving snapshot ID %s: %w", id, err)
		}
		matches = append(matches, full)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolving snapshot ID %s: %w", id, err)
	}
	switch len(matches) {
	case 0:
		return "", types.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches multiple snapshots", types.ErrInvalidID, id)
	}
}

// scanner abstracts *sql.Row and *sql.Rows for hydrateMeta.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateMeta scans one snapshots row into metadata plus the decoded
// column descriptors.
func hydrateMeta(sc scanner) (types.SnapshotMeta, []columnJSON, error) {
	var meta types.SnapshotMeta
	var colBlob, createdAt string
	if err := sc.Scan(&meta.SnapshotID, &meta.Template, &colBlob, &meta.RowCount, &createdAt); err != nil {
		return types.SnapshotMeta{}, nil, err
	}

	var cols []columnJSON
	if err := json.Unmarshal([]byte(colBlob), &cols); err != nil {
		return types.SnapshotMeta{}, nil, fmt.Errorf("decoding columns: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return types.SnapshotMeta{}, nil, fmt.Errorf("parsing created_at: %w", err)
	}
	meta.CreatedAt = ts

	meta.Columns = make([]string, 0, len(cols)+1)
	meta.Columns = append(meta.Columns, types.PathColumn)
	for _, c := range cols {
		meta.Columns = append(meta.Columns, c.Name)
	}
	return meta, cols, nil
}

// describeColumns records name and value type for each non-path column.
// Types come from the first record; an empty frame defaults every column
// to text, which is harmless since there are no rows to convert back.
func describeColumns(f *types.Frame) []columnJSON {
	records := f.Records()
	var cols []columnJSON
	for _, name := range f.Columns() {
		if name == types.PathColumn {
			continue
		}
		vt := valueTypeText
		if len(records) > 0 {
			switch records[0].Fields[name].(type) {
			case int, int64:
				vt = valueTypeInteger
			case float32, float64:
				vt = valueTypeFloat
			}
		}
		cols = append(cols, columnJSON{Name: name, ValueType: vt})
	}
	return cols
}

// decodeFields decodes one row's field blob, restoring the value kind
// recorded for each column.
func decodeFields(blob string, cols []columnJSON) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(blob)))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(cols))
	for _, c := range cols {
		v, ok := raw[c.Name]
		if !ok {
			return nil, fmt.Errorf("missing field %q", c.Name)
		}
		switch c.ValueType {
		case valueTypeInteger:
			num, ok := v.(json.Number)
			if !ok {
				return nil, fmt.Errorf("field %q: expected number, got %T", c.Name, v)
			}
			n, err := num.Int64()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", c.Name, err)
			}
			fields[c.Name] = int(n)
		case valueTypeFloat:
			num, ok := v.(json.Number)
			if !ok {
				return nil, fmt.Errorf("field %q: expected number, got %T", c.Name, v)
			}
			fl, err := num.Float64()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", c.Name, err)
			}
			fields[c.Name] = fl
		default:
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("field %q: expected string, got %T", c.Name, v)
			}
			fields[c.Name] = str
		}
	}
	return fields, nil
}
