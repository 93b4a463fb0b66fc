// Package pyinspect introspects a live Python module by running an embedded
// script in a Python interpreter.
package pyinspect

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/agentflare-ai/dokuref/internal/locate"
	"github.com/agentflare-ai/dokuref/internal/namespace"
	"github.com/agentflare-ai/dokuref/internal/source/dump"
)

//go:embed introspect.py
var script string

const findSpec = "import importlib.util, sys; sys.exit(0 if importlib.util.find_spec(sys.argv[1]) else 1)"

// Options configure the interpreter and the extension search.
type Options struct {
	// Python is the interpreter binary. Empty means python3.
	Python string
	// Pattern is the glob the extension file matches. Empty means
	// locate.DefaultPattern.
	Pattern string
	Locate  locate.Config
	// Env and Home default to the process environment and user home.
	Env    map[string]string
	Home   string
	Logger *slog.Logger
}

func (o Options) python() string {
	if o.Python != "" {
		return o.Python
	}
	return "python3"
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Load imports module in the interpreter and decodes its snapshot.
func Load(ctx context.Context, module string, opts Options) (*namespace.Object, error) {
	out, err := run(ctx, "dump", module, opts)
	if err != nil {
		return nil, err
	}
	ns, err := dump.Decode(bytes.NewReader(out), dump.JSON)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot of %s: %w", module, err)
	}
	return ns, nil
}

// CaptureHelp returns the plain-text help() rendering of module.
func CaptureHelp(ctx context.Context, module string, opts Options) (string, error) {
	out, err := run(ctx, "help", module, opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func run(ctx context.Context, mode, module string, opts Options) ([]byte, error) {
	pythonPath, err := SearchPath(ctx, module, opts)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, opts.python(), "-c", script, mode, module)
	cmd.Env = os.Environ()
	if pythonPath != "" {
		if existing := os.Getenv("PYTHONPATH"); existing != "" {
			pythonPath += string(os.PathListSeparator) + existing
		}
		cmd.Env = append(cmd.Env, "PYTHONPATH="+pythonPath)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	opts.logger().Debug("running interpreter", "python", opts.python(), "mode", mode, "module", module)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s %s %s: exit code %d: %s", opts.python(), mode, module, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("executing %s: %w", opts.python(), err)
	}
	return stdout.Bytes(), nil
}

// SearchPath returns the directory to add to PYTHONPATH so that module
// imports. It returns "" when the interpreter already finds the module.
func SearchPath(ctx context.Context, module string, opts Options) (string, error) {
	log := opts.logger()
	if err := exec.CommandContext(ctx, opts.python(), "-c", findSpec, module).Run(); err == nil {
		log.Debug("module importable without search", "module", module)
		return "", nil
	} else if ctx.Err() != nil {
		return "", ctx.Err()
	}

	env := opts.Env
	if env == nil {
		env = locate.Environ()
	}
	home := opts.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	dirs := locate.Candidates(runtime.GOOS, env, home, opts.Locate)
	dir, err := locate.FindFirst(dirs, opts.Pattern)
	if err != nil {
		return "", err
	}
	log.Info("found extension", "module", module, "dir", dir)
	return dir, nil
}
