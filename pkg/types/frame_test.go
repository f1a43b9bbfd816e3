package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweepFrame builds the two-run fixture used across filter tests.
func sweepFrame() *Frame {
	return NewFrame([]string{"run", "parameter"}, []Record{
		{Path: "data/run1_p10.csv", Fields: map[string]any{"run": 1, "parameter": 10}},
		{Path: "data/run2_p20.csv", Fields: map[string]any{"run": 2, "parameter": 20}},
	})
}

func TestFrameAccessors(t *testing.T) {
	f := sweepFrame()

	t.Run("columns start with path", func(t *testing.T) {
		assert.Equal(t, []string{"path", "run", "parameter"}, f.Columns())
	})

	t.Run("column values in row order", func(t *testing.T) {
		runs, err := f.Column("run")
		require.NoError(t, err)
		assert.Equal(t, []any{1, 2}, runs)

		paths, err := f.Column("path")
		require.NoError(t, err)
		assert.Equal(t, []any{"data/run1_p10.csv", "data/run2_p20.csv"}, paths)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := f.Column("nope")
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
}

func TestFilter(t *testing.T) {
	f := sweepFrame()

	t.Run("scalar equality", func(t *testing.T) {
		got, err := f.Filter(map[string]any{"run": 1})
		require.NoError(t, err)
		require.Equal(t, 1, got.Len())
		assert.Equal(t, "data/run1_p10.csv", got.Records()[0].Path)
	})

	t.Run("membership for slice values", func(t *testing.T) {
		got, err := f.Filter(map[string]any{"run": []any{1, 2}})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Len())
	})

	t.Run("constraints accumulate with OR", func(t *testing.T) {
		// run=1 matches only the first row, parameter=20 only the
		// second; OR accumulation keeps both. The AND interpretation
		// would keep neither -- see TestFilterAll.
		got, err := f.Filter(map[string]any{"run": 1, "parameter": 20})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Len())
	})

	t.Run("no constraints selects nothing", func(t *testing.T) {
		got, err := f.Filter(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())
	})

	t.Run("unknown column fails loudly", func(t *testing.T) {
		_, err := f.Filter(map[string]any{"nope": 1})
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("unusable constraint values rejected", func(t *testing.T) {
		_, err := f.Filter(map[string]any{"run": nil})
		assert.ErrorIs(t, err, ErrInvalidFilter)

		_, err = f.Filter(map[string]any{"run": map[string]int{"a": 1}})
		assert.ErrorIs(t, err, ErrInvalidFilter)

		_, err = f.Filter(map[string]any{"run": []any{1, nil}})
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("row order preserved", func(t *testing.T) {
		got, err := f.Filter(map[string]any{"run": []any{2, 1}})
		require.NoError(t, err)
		paths, err := got.Column("path")
		require.NoError(t, err)
		assert.Equal(t, []any{"data/run1_p10.csv", "data/run2_p20.csv"}, paths)
	})

	t.Run("idempotent", func(t *testing.T) {
		once, err := f.Filter(map[string]any{"run": 1})
		require.NoError(t, err)
		twice, err := once.Filter(map[string]any{"run": 1})
		require.NoError(t, err)
		assert.Equal(t, once.Records(), twice.Records())
	})

	t.Run("numeric kinds coerce", func(t *testing.T) {
		got, err := f.Filter(map[string]any{"run": int64(1)})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())

		got, err = f.Filter(map[string]any{"run": float64(1)})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())
	})

	t.Run("filter by path", func(t *testing.T) {
		got, err := f.Filter(map[string]any{"path": "data/run2_p20.csv"})
		require.NoError(t, err)
		require.Equal(t, 1, got.Len())
		assert.Equal(t, 2, got.Records()[0].Fields["run"])
	})

	t.Run("source frame untouched", func(t *testing.T) {
		_, err := f.Filter(map[string]any{"run": 1})
		require.NoError(t, err)
		assert.Equal(t, 2, f.Len())
	})
}

func TestFilterAll(t *testing.T) {
	f := sweepFrame()

	t.Run("every constraint must match", func(t *testing.T) {
		got, err := f.FilterAll(map[string]any{"run": 1, "parameter": 20})
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())

		got, err = f.FilterAll(map[string]any{"run": 1, "parameter": 10})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())
	})

	t.Run("no constraints selects nothing", func(t *testing.T) {
		got, err := f.FilterAll(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())
	})

	t.Run("unknown column fails loudly", func(t *testing.T) {
		_, err := f.FilterAll(map[string]any{"nope": 1})
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
}

func TestRecordValue(t *testing.T) {
	r := Record{Path: "a/b.csv", Fields: map[string]any{"run": 3}}

	v, err := r.Value(PathColumn)
	require.NoError(t, err)
	assert.Equal(t, "a/b.csv", v)

	v, err = r.Value("run")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = r.Value("nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
