package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vertti/wineloader/pkg/exec"
)

// fakeYQ prints the top-level Runner of the file given as third argument,
// like `yq -r .Runner <file>`. It only uses shell builtins so PATH can be
// restricted to the test's bin directory.
const fakeYQ = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    Runner:*) v=${line#Runner:}; echo ${v} ;;
  esac
done < "$3"
`

// sandbox is an isolated environment: a bin directory that is the whole
// PATH, a Bottles data directory and a config file location.
type sandbox struct {
	bin     string
	data    string
	cfgPath string
}

func newSandbox(t *testing.T, withYQ, withSystemWine bool) *sandbox {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("launch tests need a POSIX shell")
	}

	root := t.TempDir()
	s := &sandbox{
		bin:     filepath.Join(root, "bin"),
		data:    filepath.Join(root, "data", "bottles"),
		cfgPath: filepath.Join(root, "config", "wine_settings.json"),
	}
	require.NoError(t, os.MkdirAll(s.bin, 0o755))

	if withYQ {
		writeFile(t, filepath.Join(s.bin, "yq"), fakeYQ, 0o755)
	}
	if withSystemWine {
		writeFile(t, filepath.Join(s.bin, "wine"), "#!/bin/sh\n", 0o755)
	}

	t.Setenv("PATH", s.bin)
	t.Setenv("WINEPREFIX", "")
	t.Setenv("YABRIDGE_WINE", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "xdg"))
	t.Setenv("WINELOADER_CONFIG", s.cfgPath)
	t.Setenv("WINELOADER_PREFER", "")
	t.Setenv("WINELOADER_REQUIRE_CONFIG", "")
	t.Setenv("WINELOADER_LOG_LEVEL", "")
	return s
}

func (s *sandbox) systemWine() string {
	return filepath.Join(s.bin, "wine")
}

// bottle creates a prefix whose bottle.yml names runner.
func (s *sandbox) bottle(t *testing.T, name, runner string) string {
	t.Helper()
	prefix := filepath.Join(s.data, "bottles", name)
	writeFile(t, filepath.Join(prefix, "bottle.yml"), "Name: "+name+"\nRunner: "+runner+"\nArch: win64\n", 0o644)
	return prefix
}

// runnerWine installs a runner and returns its wine path.
func (s *sandbox) runnerWine(t *testing.T, runner string) string {
	t.Helper()
	path := filepath.Join(s.data, "runners", runner, "bin", "wine")
	writeFile(t, path, "#!/bin/sh\n", 0o755)
	return path
}

func (s *sandbox) writeConfig(t *testing.T, content string) {
	t.Helper()
	writeFile(t, s.cfgPath, content, 0o644)
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

// recordingReplacer records the exec it was asked to perform instead of
// replacing the test process.
type recordingReplacer struct {
	calls      int
	executable string
	argv       []string
	prefix     string
}

func (r *recordingReplacer) Replace(executable string, args []string) error {
	r.calls++
	r.executable = executable
	r.argv = exec.Argv(args)
	r.prefix = os.Getenv("WINEPREFIX")
	return exec.CheckExecutable(executable)
}

func useRecorder(t *testing.T) *recordingReplacer {
	t.Helper()
	rec := &recordingReplacer{}
	old := replacer
	replacer = rec
	t.Cleanup(func() { replacer = old })
	return rec
}
