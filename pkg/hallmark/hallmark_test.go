package hallmark

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// writeFiles creates empty fixture files under dir, mkdir-ing as needed.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
}

func TestBuild(t *testing.T) {
	t.Run("two-run sweep", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "data/run1_p10.csv", "data/run2_p20.csv")
		tmpl := filepath.Join(dir, "data/run{run:d}_p{parameter:d}.csv")

		frame, err := Build(tmpl, Options{})
		require.NoError(t, err)

		assert.Equal(t, []string{"path", "run", "parameter"}, frame.Columns())
		require.Equal(t, 2, frame.Len())

		records := frame.Records()
		assert.Equal(t, filepath.Join(dir, "data/run1_p10.csv"), records[0].Path)
		assert.Equal(t, map[string]any{"run": 1, "parameter": 10}, records[0].Fields)
		assert.Equal(t, map[string]any{"run": 2, "parameter": 20}, records[1].Fields)
	})

	t.Run("row order is repeatable", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "data/run3_p1.csv", "data/run1_p9.csv", "data/run2_p5.csv")
		tmpl := filepath.Join(dir, "data/run{run:d}_p{parameter:d}.csv")

		first, err := Build(tmpl, Options{})
		require.NoError(t, err)
		second, err := Build(tmpl, Options{})
		require.NoError(t, err)
		assert.Equal(t, first.Records(), second.Records())

		runs, err := first.Column("run")
		require.NoError(t, err)
		assert.Equal(t, []any{1, 2, 3}, runs)
	})

	t.Run("named binding fixes a placeholder", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "data/run1_p10.csv", "data/run2_p20.csv")
		tmpl := filepath.Join(dir, "data/run{run:d}_p{parameter:d}.csv")

		frame, err := Build(tmpl, Options{Bindings: map[string]any{"run": 1}})
		require.NoError(t, err)
		require.Equal(t, 1, frame.Len())
		assert.Equal(t, 1, frame.Records()[0].Fields["run"])
		assert.Equal(t, 10, frame.Records()[0].Fields["parameter"])
	})

	t.Run("positional values fill placeholders in order", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "data/run2_p20.csv", "data/run2_p30.csv")
		tmpl := filepath.Join(dir, "data/run{run:d}_p{parameter:d}.csv")

		frame, err := Build(tmpl, Options{Positional: []any{2}})
		require.NoError(t, err)
		assert.Equal(t, 2, frame.Len())

		frame, err = Build(tmpl, Options{Positional: []any{2, 30}})
		require.NoError(t, err)
		require.Equal(t, 1, frame.Len())
		assert.Equal(t, 30, frame.Records()[0].Fields["parameter"])
	})

	t.Run("named bindings win over positional", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "data/run1_p10.csv", "data/run2_p20.csv")
		tmpl := filepath.Join(dir, "data/run{run:d}_p{parameter:d}.csv")

		frame, err := Build(tmpl, Options{
			Positional: []any{1},
			Bindings:   map[string]any{"run": 2},
		})
		require.NoError(t, err)
		require.Equal(t, 1, frame.Len())
		assert.Equal(t, 2, frame.Records()[0].Fields["run"])
	})

	t.Run("too many positional values", func(t *testing.T) {
		_, err := Build("r{run:d}.csv", Options{Positional: []any{1, 2}})
		assert.ErrorIs(t, err, types.ErrTooManyValues)
	})

	t.Run("no matches yields an empty frame", func(t *testing.T) {
		dir := t.TempDir()
		tmpl := filepath.Join(dir, "data/run{run:d}_p{parameter:d}.csv")

		frame, err := Build(tmpl, Options{})
		require.NoError(t, err)
		assert.Equal(t, 0, frame.Len())
		assert.Equal(t, []string{"path", "run", "parameter"}, frame.Columns())
	})

	t.Run("glob match failing the strict parse is skipped", func(t *testing.T) {
		dir := t.TempDir()
		// run3x matches data/run*_p*.csv but not {run:d}.
		writeFiles(t, dir, "data/run1_p10.csv", "data/run3x_p30.csv")
		tmpl := filepath.Join(dir, "data/run{run:d}_p{parameter:d}.csv")

		var diag bytes.Buffer
		frame, err := Build(tmpl, Options{Output: &diag})
		require.NoError(t, err)
		require.Equal(t, 1, frame.Len())
		assert.Equal(t, 1, frame.Records()[0].Fields["run"])
		assert.Contains(t, diag.String(), "failed to parse")
		assert.Contains(t, diag.String(), "run3x_p30.csv")
	})

	t.Run("zero placeholders is an existence check", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "data/fixed.csv")
		tmpl := filepath.Join(dir, "data/fixed.csv")

		frame, err := Build(tmpl, Options{})
		require.NoError(t, err)
		require.Equal(t, 1, frame.Len())
		assert.Equal(t, []string{"path"}, frame.Columns())

		frame, err = Build(filepath.Join(dir, "data/absent.csv"), Options{})
		require.NoError(t, err)
		assert.Equal(t, 0, frame.Len())
	})

	t.Run("debug trace shows steps and summary", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "data/run1_p10.csv", "data/run2_p20.csv")
		tmpl := filepath.Join(dir, "data/run{run:d}_p{parameter:d}.csv")

		var out bytes.Buffer
		_, err := Build(tmpl, Options{Debug: true, Output: &out})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Pattern:")
		assert.Contains(t, out.String(), "2 matches")
	})

	t.Run("debug reports a no-match outcome", func(t *testing.T) {
		dir := t.TempDir()
		tmpl := filepath.Join(dir, "data/run{run:d}.csv")

		var out bytes.Buffer
		frame, err := Build(tmpl, Options{Debug: true, Output: &out})
		require.NoError(t, err)
		assert.Equal(t, 0, frame.Len())
		assert.Contains(t, out.String(), "No match")
	})

	t.Run("malformed template", func(t *testing.T) {
		_, err := Build("data/{run", Options{})
		assert.ErrorIs(t, err, types.ErrBadTemplate)
	})

	t.Run("custom glob hook", func(t *testing.T) {
		var seen string
		glob := func(pattern string) ([]string, error) {
			seen = pattern
			return []string{"data/run9_p90.csv"}, nil
		}

		frame, err := Build("data/run{run:d}_p{parameter:d}.csv", Options{Glob: glob})
		require.NoError(t, err)
		assert.Equal(t, "data/run*_p*.csv", seen)
		require.Equal(t, 1, frame.Len())
		assert.Equal(t, 9, frame.Records()[0].Fields["run"])
	})
}
