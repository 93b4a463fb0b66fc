// Package locate finds the directory holding a native extension module.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPattern matches the sconepy extension on every platform.
const DefaultPattern = "sconepy*.*"

// DefaultEnv names the installation root override.
const DefaultEnv = "SCONE_PATH"

// ErrNotFound is returned when no candidate directory holds a match.
var ErrNotFound = errors.New("extension module not found")

// Config adjusts the candidate list.
type Config struct {
	// Env names the variable holding an installation root. Empty means
	// DefaultEnv.
	Env string
	// Dirs are searched after the installation root and before the platform
	// defaults.
	Dirs []string
	// Replace drops the platform defaults, leaving only Env and Dirs.
	Replace bool
}

// Candidates builds the ordered list of directories to search. The env map
// and home directory are passed in so the list is a pure function of its
// inputs.
func Candidates(goos string, env map[string]string, home string, cfg Config) []string {
	name := cfg.Env
	if name == "" {
		name = DefaultEnv
	}

	var dirs []string
	if root := env[name]; root != "" {
		sub := "lib"
		if goos == "windows" {
			sub = "bin"
		}
		dirs = append(dirs, filepath.Join(root, sub))
	}
	dirs = append(dirs, cfg.Dirs...)
	if cfg.Replace {
		return dirs
	}

	switch goos {
	case "windows":
		for _, base := range []string{env["LOCALAPPDATA"], env["ProgramFiles"]} {
			if base != "" {
				dirs = append(dirs, filepath.Join(base, "SCONE", "bin"))
			}
		}
	case "linux":
		dirs = append(dirs, "/opt/scone-core/lib")
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "scone-core", "lib"))
		}
		dirs = append(dirs, "/opt/scone/lib")
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "scone", "lib"))
		}
	case "darwin":
		dirs = append(dirs, "/Applications/SCONE.app/Contents/MacOS/lib")
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "SCONE.app", "Contents", "MacOS", "lib"))
		}
	}
	return dirs
}

// FindFirst returns the first directory in dirs holding a file that matches
// pattern. Empty entries are skipped.
func FindFirst(dirs []string, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", fmt.Errorf("bad extension pattern %q: %w", pattern, err)
		}
		if len(matches) > 0 {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: %s in [%s]", ErrNotFound, pattern, strings.Join(dirs, ", "))
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
