package probe

import (
	"os"
	"os/exec"
	"path/filepath"
)

// EnvGetter reads environment variables.
type EnvGetter interface {
	LookupEnv(key string) (string, bool)
}

// RealEnvGetter reads the process environment.
type RealEnvGetter struct{}

func (r *RealEnvGetter) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// PathFinder searches PATH for executables.
type PathFinder interface {
	LookPath(file string) (string, error)
	// LookPathAll returns every PATH hit for file, in PATH order.
	LookPathAll(file string) []string
	// IsSelf reports whether path resolves to the running binary.
	IsSelf(path string) bool
}

// RealPathFinder uses exec.LookPath and the running executable.
type RealPathFinder struct{}

func (r *RealPathFinder) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (r *RealPathFinder) LookPathAll(file string) []string {
	var hits []string
	seen := make(map[string]bool)
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}
		path, err := exec.LookPath(filepath.Join(dir, file))
		if err != nil || seen[path] {
			continue
		}
		seen[path] = true
		hits = append(hits, path)
	}
	return hits
}

func (r *RealPathFinder) IsSelf(path string) bool {
	self, err := os.Executable()
	if err != nil {
		return false
	}
	selfInfo, err := os.Stat(self)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(selfInfo, info)
}
