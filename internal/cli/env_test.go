package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv runs the root command against a private config and log directory.
type testEnv struct {
	t         *testing.T
	dir       string
	configDir string
	logDir    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		t:         t,
		dir:       dir,
		configDir: filepath.Join(dir, "config"),
		logDir:    filepath.Join(dir, "logs"),
	}
}

// run executes stockroom with args and returns combined stdout and stderr.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--config-dir", e.configDir, "--log-dir", e.logDir))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "output:\n%s", out)
	return out
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	p := e.path(name)
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (e *testEnv) read(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(e.path(name))
	require.NoError(e.t, err)
	return string(data)
}

func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.configDir, configFileExt), []byte(content), 0o644))
}

const sampleProducts = `Belt(01.01.2023, "Leather", 10, True)
Cake(05.05.2023, "Birthday", 3, 20)
Cup(01.02.2023, "Mug", 20, 250)
`
