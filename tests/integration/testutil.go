// Test helpers for in-process CLI integration tests.
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hallmark/internal/cli"
)

// runCLI executes the hallmark root command in-process with the given
// arguments and returns captured stdout/stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// isolateDirs points config and data directories at fresh temp dirs so
// tests never touch the user's real configuration.
func isolateDirs(t *testing.T) (dataDir string) {
	t.Helper()
	t.Setenv("HALLMARK_CONFIG_DIR", t.TempDir())
	dataDir = t.TempDir()
	t.Setenv("HALLMARK_DATA_DIR", dataDir)
	return dataDir
}

// writeFixtures creates empty files under dir, mkdir-ing as needed, and
// returns a naming template rooted at dir.
func writeFixtures(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
}
