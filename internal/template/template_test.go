package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hallmark/pkg/types"
)

func TestCompile(t *testing.T) {
	t.Run("fields in declaration order", func(t *testing.T) {
		tmpl, err := Compile("data/run{run:d}_p{parameter:d}.csv")
		require.NoError(t, err)
		assert.Equal(t, []string{"run", "parameter"}, tmpl.Fields())
	})

	t.Run("zero placeholders", func(t *testing.T) {
		tmpl, err := Compile("data/fixed.csv")
		require.NoError(t, err)
		assert.Empty(t, tmpl.Fields())
	})

	t.Run("escaped braces are literals", func(t *testing.T) {
		tmpl, err := Compile("a{{b}}c")
		require.NoError(t, err)
		assert.Empty(t, tmpl.Fields())

		got, err := tmpl.Render(nil)
		require.NoError(t, err)
		assert.Equal(t, "a{b}c", got)
	})

	t.Run("unterminated placeholder", func(t *testing.T) {
		_, err := Compile("data/{run")
		assert.ErrorIs(t, err, types.ErrBadTemplate)
	})

	t.Run("unmatched closing brace", func(t *testing.T) {
		_, err := Compile("data}/x")
		assert.ErrorIs(t, err, types.ErrBadTemplate)
	})

	t.Run("bad placeholder name", func(t *testing.T) {
		_, err := Compile("{9lives}")
		assert.ErrorIs(t, err, types.ErrBadTemplate)
	})

	t.Run("unknown specifier", func(t *testing.T) {
		_, err := Compile("{run:x}")
		assert.ErrorIs(t, err, types.ErrUnknownSpec)
	})

	t.Run("duplicate placeholder name", func(t *testing.T) {
		_, err := Compile("{run:d}/{run:d}")
		assert.ErrorIs(t, err, types.ErrDuplicateKey)
	})
}

func TestRender(t *testing.T) {
	tmpl, err := Compile("data/run{run:d}_p{parameter:d}.csv")
	require.NoError(t, err)

	t.Run("all bound", func(t *testing.T) {
		got, err := tmpl.Render(map[string]any{"run": 1, "parameter": 10})
		require.NoError(t, err)
		assert.Equal(t, "data/run1_p10.csv", got)
	})

	t.Run("first unbound field reported", func(t *testing.T) {
		_, err := tmpl.Render(map[string]any{"parameter": 10})
		var unbound *UnboundFieldError
		require.ErrorAs(t, err, &unbound)
		assert.Equal(t, "run", unbound.Name)
	})

	t.Run("integer spec rejects string binding", func(t *testing.T) {
		_, err := tmpl.Render(map[string]any{"run": "one", "parameter": 10})
		assert.ErrorIs(t, err, types.ErrTypeMismatch)
	})

	t.Run("float spec accepts int and float", func(t *testing.T) {
		ft, err := Compile("v{x:f}")
		require.NoError(t, err)

		got, err := ft.Render(map[string]any{"x": 2.5})
		require.NoError(t, err)
		assert.Equal(t, "v2.5", got)

		got, err = ft.Render(map[string]any{"x": 3})
		require.NoError(t, err)
		assert.Equal(t, "v3", got)
	})
}

func TestParse(t *testing.T) {
	tmpl, err := Compile("data/run{run:d}_p{parameter:d}.csv")
	require.NoError(t, err)

	t.Run("recovers typed values", func(t *testing.T) {
		values, err := tmpl.Parse("data/run1_p10.csv")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"run": 1, "parameter": 10}, values)
	})

	t.Run("extra characters fail the strict match", func(t *testing.T) {
		_, err := tmpl.Parse("data/run1x_p10.csv")
		assert.ErrorIs(t, err, types.ErrNoMatch)
	})

	t.Run("missing literal fails", func(t *testing.T) {
		_, err := tmpl.Parse("data/run1.csv")
		assert.ErrorIs(t, err, types.ErrNoMatch)
	})

	t.Run("untyped field recovered as string", func(t *testing.T) {
		ut, err := Compile("logs/{host}.log")
		require.NoError(t, err)
		values, err := ut.Parse("logs/node-a.log")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"host": "node-a"}, values)
	})

	t.Run("word field stops at non-word characters", func(t *testing.T) {
		wt, err := Compile("{name:w}-{run:d}")
		require.NoError(t, err)
		values, err := wt.Parse("sweep_a-3")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "sweep_a", "run": 3}, values)
	})

	t.Run("float field", func(t *testing.T) {
		ft, err := Compile("t{temp:f}.dat")
		require.NoError(t, err)
		values, err := ft.Parse("t3.25.dat")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"temp": 3.25}, values)
	})

	t.Run("negative integer", func(t *testing.T) {
		nt, err := Compile("z{z:d}.dat")
		require.NoError(t, err)
		values, err := nt.Parse("z-4.dat")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"z": -4}, values)
	})
}

func TestRoundTrip(t *testing.T) {
	// Whatever Render produces, Parse must recover.
	tmpl, err := Compile("out/{name:w}/run{run:d}_t{temp:f}.h5")
	require.NoError(t, err)

	bindings := map[string]any{"name": "sgra", "run": 42, "temp": 1.5}
	rendered, err := tmpl.Render(bindings)
	require.NoError(t, err)

	values, err := tmpl.Parse(rendered)
	require.NoError(t, err)
	assert.Equal(t, "sgra", values["name"])
	assert.Equal(t, 42, values["run"])
	assert.Equal(t, 1.5, values["temp"])
}
